package validation

import (
	"strings"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/request"
)

// ValidateCreateUser requires a non-blank name. Name and watchlist name are capped at
// 100 bytes; an empty watchlist name falls back to the default.
func ValidateCreateUser(req request.CreateUserRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if len(req.WatchlistName) > 100 {
		errors["watchlistName"] = "watchlistName must be 100 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
