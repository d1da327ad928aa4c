// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/response"
)

// ValidateUUIDParam rejects requests whose URL parameter param is not a canonical UUID.
// IDs are stored in the lowercase hyphenated form, so other spellings uuid.Parse
// accepts (uppercase, braces, urn:uuid:) are rejected rather than missing with a 404.
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUIDParam("uuid"))
//	    r.Get("/", handler.GetUser)
//	})
func ValidateUUIDParam(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, param)
			if raw == "" {
				response.RespondError(w, r, http.StatusBadRequest, fmt.Sprintf("%s is required", param), "")
				return
			}

			parsed, err := uuid.Parse(raw)
			if err != nil {
				response.RespondError(w, r, http.StatusBadRequest, "invalid UUID format", err.Error())
				return
			}
			if parsed.String() != raw {
				response.RespondError(w, r, http.StatusBadRequest, "invalid UUID format",
					fmt.Sprintf("%s must be written as %s", param, parsed.String()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
