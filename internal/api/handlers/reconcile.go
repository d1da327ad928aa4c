package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/request"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/response"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/validation"
)

// ReconcileHandler handles simulate and commit requests
type ReconcileHandler struct {
	reconcileService *service.ReconcileService
}

// NewReconcileHandler creates a new ReconcileHandler
func NewReconcileHandler(reconcileService *service.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{
		reconcileService: reconcileService,
	}
}

// Simulate classifies a parsed report against the user's holdings. Nothing is written.
//
// Endpoint: POST /api/user/{uuid}/reconcile/simulate
// Request Body: SimulateRequest
// Response: 200 OK with SimulationResult (matches, newHoldings, skipped, previewToken)
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the user does not exist
func (h *ReconcileHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SimulateRequest](r)
	if err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSimulate(req); err != nil {
		respondValidationError(w, r, err)
		return
	}

	result, err := h.reconcileService.Simulate(r.Context(), chi.URLParam(r, "uuid"), model.Report{
		Type: model.ParseReportType(req.Type),
		Rows: req.Rows,
	})
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToSimulate.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusOK, result)
}

// commitStatusCode picks the HTTP status for a commit result.
func commitStatusCode(summary model.CommitSummary) int {
	switch summary.Status() {
	case model.CommitStatusNotAttempted:
		return http.StatusUnprocessableEntity
	case model.CommitStatusPartial:
		return http.StatusMultiStatus
	case model.CommitStatusFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// Commit applies a previewed classification. Writes are independent: a failed write
// does not undo the others, and the body lists the outcome of each one.
//
// Endpoint: POST /api/user/{uuid}/reconcile/commit
// Request Body: CommitRequest
// Response: 200 OK with CommitSummary when every write succeeded
// Response: 207 Multi-Status with CommitSummary when some writes failed
// Error: 400 Bad Request if the body is invalid or the preview token is invalid or expired
// Error: 403 Forbidden if the preview token was issued for another user
// Error: 409 Conflict if the preview token was already committed
// Error: 404 Not Found if the user does not exist
// Error: 422 Unprocessable Entity with CommitSummary if the user has no holdings list
// Error: 502 Bad Gateway with CommitSummary when every write failed
func (h *ReconcileHandler) Commit(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CommitRequest](r)
	if err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCommit(req); err != nil {
		respondValidationError(w, r, err)
		return
	}

	summary, err := h.reconcileService.CommitPreview(r.Context(), chi.URLParam(r, "uuid"), req.PreviewToken, req.ExcludeCodes)
	if err != nil && summary.Attempted == 0 &&
		!errors.Is(err, apperrors.ErrNoAuthenticatedUser) && !errors.Is(err, apperrors.ErrNoHoldingsList) {
		respondServiceError(w, r, err, apperrors.ErrFailedToCommit.Error())
		return
	}

	response.RespondJSON(w, r, commitStatusCode(summary), summary)
}
