// Package response writes the API's JSON bodies.
package response

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/logging"
)

// ErrorResponse is the body of every non-2xx response.
// RequestID matches the requestId field of the request's log lines.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// RespondJSON writes data as JSON with the given status. A nil data writes no body.
// Encoding failures are logged with the request's logger; the status is already sent.
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("failed to encode JSON response")
	}
}

// RespondError writes an ErrorResponse. details may be a string, field errors or nil.
//
//	response.RespondError(w, r, http.StatusBadRequest, "validation failed", vErr.Fields)
//	response.RespondError(w, r, http.StatusNotFound, "user not found", "")
func RespondError(w http.ResponseWriter, r *http.Request, status int, message string, details any) {
	RespondJSON(w, r, status, ErrorResponse{
		Error:     message,
		Details:   details,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// RespondTooManyRequests writes 429 with a Retry-After header rounded up to whole seconds.
func RespondTooManyRequests(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	seconds := int((retryAfter + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	RespondError(w, r, http.StatusTooManyRequests, "too many requests", "retry after "+strconv.Itoa(seconds)+"s")
}
