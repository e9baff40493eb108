package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

// PostgresStore reads membership records from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed membership store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindByRoomAndUser returns the stored record for the pair, or
// sentinel.ErrNotFound when none exists. Absence is the common case for
// first-time listeners and is not an error at this layer either.
func (s *PostgresStore) FindByRoomAndUser(ctx context.Context, roomID, userID string) (*models.Membership, error) {
	const query = `
		SELECT role, is_banned
		FROM room_members
		WHERE room_id = $1 AND user_id = $2
		LIMIT 1
	`

	var m models.Membership
	err := s.db.QueryRowContext(ctx, query, roomID, userID).Scan(
		&m.Role,
		&m.IsBanned,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find membership: %w", err)
	}
	return &m, nil
}
