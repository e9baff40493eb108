// Package ports defines the boundary interfaces the access pipeline consumes.
// All of them are read-only from the pipeline's perspective; the service
// issues no writes and holds no cross-request state.
package ports

import (
	"context"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/audit"
)

// UserStore looks up identities. Implementations return
// sentinel.ErrNotFound (optionally wrapped) when no record matches.
type UserStore interface {
	// FindByEmail returns the identity keyed by the given email. The store
	// enforces email uniqueness; if that invariant is ever violated the
	// first match wins (caller assumption, not re-validated here).
	FindByEmail(ctx context.Context, email string) (*models.UserIdentity, error)
}

// RoomStore looks up rooms by their public slug.
type RoomStore interface {
	FindBySlug(ctx context.Context, slug string) (*models.Room, error)
}

// MembershipStore looks up the stored (room, user) relationship.
// Absence of a record is reported via sentinel.ErrNotFound; the service maps
// it to the explicit absent state rather than treating it as a failure.
type MembershipStore interface {
	FindByRoomAndUser(ctx context.Context, roomID, userID string) (*models.Membership, error)
}

// CredentialIssuer mints the signed, time-bounded bearer credential for a
// fully resolved decision. Consumed, never implemented, by the pipeline.
type CredentialIssuer interface {
	Issue(ctx context.Context, decision *models.GrantDecision) (string, error)
}

// AuditPublisher fans decision events out to the configured sinks.
type AuditPublisher = audit.Publisher
