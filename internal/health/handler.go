// Package health exposes the liveness endpoint. It reports connectivity to
// the backing stores; it is transport glue, not part of the grant pipeline.
package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Pinger is anything that can report backend connectivity.
type Pinger interface {
	Health(ctx context.Context) error
}

// Handler answers GET /health.
type Handler struct {
	db    *sql.DB
	redis Pinger // nil when Redis is not configured
}

func New(db *sql.DB, redis Pinger) *Handler {
	return &Handler{db: db, redis: redis}
}

// Register mounts the health endpoint on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]any{"ok": true}

	if err := h.db.PingContext(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["ok"] = false
		body["db"] = "unreachable"
	} else {
		body["db"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["ok"] = false
			body["redis"] = "unreachable"
		} else {
			body["redis"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
