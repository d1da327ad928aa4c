package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/response"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/logging"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies; a large trades export is well under this.
const maxBodyBytes = 8 << 20

// parseJSON decodes the request body into T, rejecting unknown fields and trailing data.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, fmt.Errorf("request body is empty")
		}
		return req, err
	}
	if dec.More() {
		return req, fmt.Errorf("request body must contain a single JSON object")
	}
	return req, nil
}

// respondValidationError writes 400 with per-field messages when err is a validation.Error.
func respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		response.RespondError(w, r, http.StatusBadRequest, "validation failed", vErr.Fields)
		return
	}
	response.RespondError(w, r, http.StatusBadRequest, "validation failed", err.Error())
}

// respondServiceError maps service errors to HTTP statuses.
// Anything unrecognised is logged and reported as 500 with the given message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		response.RespondError(w, r, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrHoldingNotFound):
		response.RespondError(w, r, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrUnknownReportType):
		response.RespondError(w, r, http.StatusBadRequest, apperrors.ErrUnknownReportType.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidPreviewToken):
		response.RespondError(w, r, http.StatusBadRequest, apperrors.ErrInvalidPreviewToken.Error(), "simulate the report again")
	case errors.Is(err, apperrors.ErrPreviewAlreadyUsed):
		response.RespondError(w, r, http.StatusConflict, apperrors.ErrPreviewAlreadyUsed.Error(), "simulate the report again")
	case errors.Is(err, apperrors.ErrPreviewUserMismatch):
		response.RespondError(w, r, http.StatusForbidden, apperrors.ErrPreviewUserMismatch.Error(), "")
	default:
		logging.FromContext(r.Context()).WithError(err).Error(message)
		response.RespondError(w, r, http.StatusInternalServerError, message, err.Error())
	}
}
