// Package ratelimit bounds token requests per client IP. The pipeline itself
// stays ignorant of limiting; this is transport middleware in front of it.
package ratelimit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"roomgate/pkg/requestcontext"
)

// Result describes one limiter decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store tracks request counts per key over a sliding window.
type Store interface {
	// Allow consumes one slot for key if the window has room.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// Middleware enforces a per-IP limit on the wrapped handler. A zero limit
// disables enforcement. Store failures fail open: availability of the token
// endpoint matters more than precise limiting.
func Middleware(store Store, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, err := store.Allow(ctx, "ip:"+ip, limit, window)
			if err != nil {
				logger.ErrorContext(ctx, "rate limit check failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			addHeaders(w, result)
			if !result.Allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func addHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
