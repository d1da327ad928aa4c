package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/response"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/logging"
)

// limiterIdle is how long an unused per-user limiter is kept.
const limiterIdle = 10 * time.Minute

// RateLimiter throttles requests per user, keyed on the uuid URL parameter.
// Requests without one share a single limiter.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *cache.Cache
}

// NewRateLimiter allows perMinute requests per user with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		limiters: cache.New(limiterIdle, limiterIdle),
	}
}

func (l *RateLimiter) limiterFor(key string) *rate.Limiter {
	if cached, ok := l.limiters.Get(key); ok {
		limiter := cached.(*rate.Limiter)
		l.limiters.SetDefault(key, limiter)
		return limiter
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	// Add fails if a concurrent request stored one first; use theirs.
	if err := l.limiters.Add(key, limiter, cache.DefaultExpiration); err != nil {
		if cached, ok := l.limiters.Get(key); ok {
			return cached.(*rate.Limiter)
		}
	}
	return limiter
}

// Handler rejects requests over the limit with 429 Too Many Requests.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "uuid")
		limiter := l.limiterFor(key)

		// A reservation reports how long until a token frees up; cancelling it returns
		// the token so a rejected request costs nothing.
		res := limiter.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			logging.FromContext(r.Context()).WithField("userId", key).Warn("rate limit exceeded")
			response.RespondTooManyRequests(w, r, delay)
			return
		}

		next.ServeHTTP(w, r)
	})
}
