package membership

import (
	"context"
	"sync"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

type key struct {
	roomID string
	userID string
}

// InMemory is a map-backed membership store for tests and local development.
type InMemory struct {
	mu      sync.RWMutex
	records map[key]models.Membership
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[key]models.Membership)}
}

// Add registers a membership record for the (room, user) pair.
func (s *InMemory) Add(roomID, userID string, m models.Membership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key{roomID, userID}] = m
}

func (s *InMemory) FindByRoomAndUser(_ context.Context, roomID, userID string) (*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.records[key{roomID, userID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &m, nil
}
