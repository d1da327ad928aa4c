package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/response"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
)

// HoldingHandler handles holding-related HTTP requests
type HoldingHandler struct {
	holdingService *service.HoldingService
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(holdingService *service.HoldingService) *HoldingHandler {
	return &HoldingHandler{
		holdingService: holdingService,
	}
}

// Holdings lists a user's holdings in insertion order.
//
// Endpoint: GET /api/user/{uuid}/holdings
// Response: 200 OK with []Holding
// Error: 404 Not Found if the user does not exist
func (h *HoldingHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.GetHoldings(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveHoldings.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusOK, holdings)
}

// DuplicateAliases lists codes that match more than one of the user's holdings.
// Only the first holding of each group receives reconciled updates.
//
// Endpoint: GET /api/user/{uuid}/holdings/duplicates
// Response: 200 OK with []DuplicateAlias
// Error: 404 Not Found if the user does not exist
func (h *HoldingHandler) DuplicateAliases(w http.ResponseWriter, r *http.Request) {
	duplicates, err := h.holdingService.GetDuplicateAliases(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveHoldings.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusOK, duplicates)
}
