package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/plannivo/booking-api/internal/pkg/logger"
	"github.com/plannivo/booking-api/internal/pkg/ratelimit"
	"github.com/plannivo/booking-api/internal/pkg/response"
)

// RateLimit rejects clients over their budget with 429. Limiter errors let the request
// through.
func RateLimit(limiter ratelimit.Limiter, window time.Duration) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			ok, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.FromContext(r.Context()).Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				logger.FromContext(r.Context()).Warn().Str("ip", ip).Msg("Rate limit exceeded")
				w.Header().Set("Retry-After", retryAfter)
				response.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
