package access

import (
	"log/slog"

	"roomgate/internal/access/handler"
	"roomgate/internal/access/ports"
	"roomgate/internal/access/service"
)

// Service exposes the grant resolution pipeline.
type Service = service.Service

// Handler wires HTTP endpoints to the access service.
type Handler = handler.Handler

// NewService constructs the pipeline with its required collaborators.
func NewService(
	users ports.UserStore,
	rooms ports.RoomStore,
	members ports.MembershipStore,
	issuer ports.CredentialIssuer,
	sessionURL string,
	opts ...service.Option,
) (*Service, error) {
	return service.New(users, rooms, members, issuer, sessionURL, opts...)
}

// NewHandler constructs an HTTP handler for the token endpoint.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
