package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

// PostgresStore reads user identities from PostgreSQL. roomgate never writes
// to this table; membership mutation belongs to the upstream application.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindByEmail returns the identity for the given email. LIMIT 1 implements
// the documented first-match policy should the uniqueness constraint ever be
// violated upstream.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.UserIdentity, error) {
	const query = `
		SELECT id, display_name, email
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var identity models.UserIdentity
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&identity.ID,
		&identity.DisplayName,
		&identity.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &identity, nil
}
