package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

// PostgresStore reads rooms from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed room store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindBySlug(ctx context.Context, slug string) (*models.Room, error) {
	const query = `
		SELECT id, slug, provider_ref, status
		FROM rooms
		WHERE slug = $1
		LIMIT 1
	`

	var r models.Room
	err := s.db.QueryRowContext(ctx, query, slug).Scan(
		&r.ID,
		&r.Slug,
		&r.ExternalRef,
		&r.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find room by slug: %w", err)
	}
	return &r, nil
}
