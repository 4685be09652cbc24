package middleware

import (
	"net/http"

	rl "github.com/rogerio-castellano/lesoria-cart/internal/http/rate_limiter"
	"github.com/rogerio-castellano/lesoria-cart/internal/logging"
)

// RateLimit rejects requests above the visitor's budget with 429. It must run after Visitor.
func RateLimit(limiter *rl.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := VisitorID(r)
			if key == "" {
				key = r.RemoteAddr
			}
			if !limiter.Allow(key) {
				logging.FromContext(r.Context()).Warn("rate limit exceeded")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
