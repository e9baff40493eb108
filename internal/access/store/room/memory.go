package room

import (
	"context"
	"sync"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

// InMemory is a map-backed room store for tests and local development.
type InMemory struct {
	mu    sync.RWMutex
	rooms map[string]models.Room // keyed by slug
}

func NewInMemory() *InMemory {
	return &InMemory{rooms: make(map[string]models.Room)}
}

// Add registers a room by slug, replacing any previous entry.
func (s *InMemory) Add(r models.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.Slug] = r
}

func (s *InMemory) FindBySlug(_ context.Context, slug string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[slug]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}
