package user

import (
	"context"
	"strings"
	"sync"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

// InMemory is a map-backed user store for tests and local development.
type InMemory struct {
	mu    sync.RWMutex
	users map[string]models.UserIdentity // keyed by lowercased email
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[string]models.UserIdentity)}
}

// Add registers a user, keyed case-insensitively by email.
func (s *InMemory) Add(identity models.UserIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(identity.Email)] = identity
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.UserIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &identity, nil
}
