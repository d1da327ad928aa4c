package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/middleware"
)

func TestAPIKeyMiddleware(t *testing.T) {
	const testAPIKey = "test-api-key-12345"

	tests := []struct {
		name        string
		envKey      string
		apiKey      string
		timeToken   func() string
		wantStatus  int
		wantDetails string
	}{
		{
			name:        "rejects request without API key",
			envKey:      testAPIKey,
			wantStatus:  http.StatusUnauthorized,
			wantDetails: "Missing API key",
		},
		{
			name:        "rejects request with invalid API key",
			envKey:      testAPIKey,
			apiKey:      "invalid",
			wantStatus:  http.StatusUnauthorized,
			wantDetails: "Invalid API key",
		},
		{
			name:        "rejects request without time token",
			envKey:      testAPIKey,
			apiKey:      testAPIKey,
			wantStatus:  http.StatusUnauthorized,
			wantDetails: "Missing Time token",
		},
		{
			name:        "rejects request with invalid time token",
			envKey:      testAPIKey,
			apiKey:      testAPIKey,
			timeToken:   func() string { return "invalid" },
			wantStatus:  http.StatusUnauthorized,
			wantDetails: "Time token is invalid or expired",
		},
		{
			name:        "rejects a time token minted with another key",
			envKey:      testAPIKey,
			apiKey:      testAPIKey,
			timeToken:   func() string { return middleware.GenerateTimeToken("other-key") },
			wantStatus:  http.StatusUnauthorized,
			wantDetails: "Time token is invalid or expired",
		},
		{
			name:       "allows request with valid API key and time token",
			envKey:     testAPIKey,
			apiKey:     testAPIKey,
			timeToken:  func() string { return middleware.GenerateTimeToken(testAPIKey) },
			wantStatus: http.StatusOK,
		},
		{
			name:        "fails when the internal API key is not loaded",
			wantStatus:  http.StatusInternalServerError,
			wantDetails: "Authentication not loaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("INTERNAL_API_KEY", tt.envKey)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.timeToken != nil {
				req.Header.Set("X-Time-Token", tt.timeToken())
			}

			w := httptest.NewRecorder()
			middleware.APIKeyMiddleware(next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
			if handlerCalled != (tt.wantStatus == http.StatusOK) {
				t.Errorf("handlerCalled = %v for status %d", handlerCalled, tt.wantStatus)
			}
			if tt.wantDetails == "" {
				return
			}

			var response map[string]string
			//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
			json.NewDecoder(w.Body).Decode(&response)

			if response["details"] != tt.wantDetails {
				t.Errorf("Expected '%s' error, got '%s'", tt.wantDetails, response["details"])
			}
		})
	}
}
