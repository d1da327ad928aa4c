package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/request"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/response"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/validation"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser handles POST requests to create a user and its primary watchlist.
//
// Endpoint: POST /api/user
// Request Body: CreateUserRequest
// Response: 201 Created with User
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateUserRequest](r)
	if err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateUser(req); err != nil {
		respondValidationError(w, r, err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Name, req.WatchlistName)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToCreateUser.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusCreated, user)
}

// GetUser handles GET requests for a single user.
//
// Endpoint: GET /api/user/{uuid}
// Response: 200 OK with User
// Error: 404 Not Found if the user does not exist
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveUser.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusOK, user)
}
