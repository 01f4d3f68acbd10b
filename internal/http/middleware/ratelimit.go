package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/ecolog/freightquote/internal/config"
	"github.com/ecolog/freightquote/internal/observability"
)

// RateLimit rejects requests beyond the configured rate with 429.
// A nil config or non-positive rate disables limiting.
func RateLimit(cfg *config.RateLimitConfig) Middleware {
	if cfg == nil || cfg.RequestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				observability.FromContext(r.Context()).Warn("rate limit exceeded",
					observability.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
