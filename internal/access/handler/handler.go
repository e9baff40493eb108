package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roomgate/internal/access/models"
	dErrors "roomgate/pkg/domain-errors"
)

// AccessService is the slice of the pipeline the transport needs.
type AccessService interface {
	Grant(ctx context.Context, req models.GrantRequest) (*models.GrantResult, error)
}

// Handler is the thin HTTP layer over the access service. It parses input,
// delegates, and maps domain errors to statuses; no business logic lives
// here.
type Handler struct {
	svc    AccessService
	logger *slog.Logger
}

func New(svc AccessService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the token endpoint on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/rooms/token", h.handleToken)
}

func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	var req models.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.svc.Grant(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// writeError translates domain errors into the JSON error envelope. Rejection
// messages are caller-safe by construction; infrastructure failures get a
// generic message so internals never leak.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.HTTPStatus(code)

	message := string(code)
	var de *dErrors.Error
	switch code {
	case dErrors.CodeInternal, dErrors.CodeUnavailable:
		message = "service unavailable"
	default:
		if errors.As(err, &de) {
			message = de.Message
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "token request failed", "error", err, "status", status)
	}

	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}
