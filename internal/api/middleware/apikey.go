package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/response"
)

// timeTokenWindow is the lifetime of a time token. The previous window is also
// accepted so tokens minted just before a boundary stay valid.
const timeTokenWindow = 5 * time.Minute

func timeTokenAt(apiKey string, t time.Time) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(strconv.FormatInt(t.Unix()/int64(timeTokenWindow/time.Second), 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// GenerateTimeToken returns the time token for the current window.
func GenerateTimeToken(apiKey string) string {
	return timeTokenAt(apiKey, time.Now())
}

func validTimeToken(apiKey, token string) bool {
	now := time.Now()
	for _, t := range []time.Time{now, now.Add(-timeTokenWindow)} {
		if hmac.Equal([]byte(token), []byte(timeTokenAt(apiKey, t))) {
			return true
		}
	}
	return false
}

// APIKeyMiddleware protects write endpoints. Requests must carry the INTERNAL_API_KEY
// in X-API-Key and a current HMAC time token in X-Time-Token.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv("INTERNAL_API_KEY")
		if apiKey == "" {
			response.RespondError(w, r, http.StatusInternalServerError, "authentication error", "Authentication not loaded")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, r, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if !hmac.Equal([]byte(provided), []byte(apiKey)) {
			response.RespondError(w, r, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, r, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if !validTimeToken(apiKey, timeToken) {
			response.RespondError(w, r, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
