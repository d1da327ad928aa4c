package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/middleware"
)

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects requests beyond the burst", func(t *testing.T) {
		handler := middleware.NewRateLimiter(1, 2).Handler(ok)
		user := "550e8400-e29b-41d4-a716-446655440000"

		codes := make([]int, 3)
		for i := range codes {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, requestWithUUID(user))
			codes[i] = w.Code
		}

		if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
			t.Errorf("Expected first two requests to pass, got %v", codes)
		}
		if codes[2] != http.StatusTooManyRequests {
			t.Errorf("Expected 429 on third request, got %d", codes[2])
		}
	})

	t.Run("limits each user separately", func(t *testing.T) {
		handler := middleware.NewRateLimiter(1, 1).Handler(ok)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, requestWithUUID("550e8400-e29b-41d4-a716-446655440000"))
		second := httptest.NewRecorder()
		handler.ServeHTTP(second, requestWithUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))

		if first.Code != http.StatusOK || second.Code != http.StatusOK {
			t.Errorf("Expected both users to pass, got %d and %d", first.Code, second.Code)
		}
	})

	t.Run("sets Retry-After", func(t *testing.T) {
		handler := middleware.NewRateLimiter(1, 1).Handler(ok)
		user := "550e8400-e29b-41d4-a716-446655440000"

		handler.ServeHTTP(httptest.NewRecorder(), requestWithUUID(user))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestWithUUID(user))

		// WHY: one request per minute means the next token frees up a minute later.
		if got := w.Header().Get("Retry-After"); got != "60" {
			t.Errorf("Expected Retry-After 60, got %q", got)
		}
	})
}
