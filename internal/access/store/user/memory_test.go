package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

type UserStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *UserStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestUserStoreSuite(t *testing.T) {
	suite.Run(t, new(UserStoreSuite))
}

func (s *UserStoreSuite) TestLookups() {
	s.Run("finds user by email", func() {
		identity := models.UserIdentity{ID: uuid.NewString(), DisplayName: "Ada", Email: "ada@example.com"}
		s.store.Add(identity)

		found, err := s.store.FindByEmail(s.ctx, "ada@example.com")
		s.Require().NoError(err)
		s.Equal(identity.ID, found.ID)
		s.Equal("Ada", found.DisplayName)
	})

	s.Run("matches email case-insensitively", func() {
		s.store.Add(models.UserIdentity{ID: uuid.NewString(), Email: "Ada@Example.com"})

		_, err := s.store.FindByEmail(s.ctx, "ada@example.com")
		s.Require().NoError(err)
	})

	s.Run("returns ErrNotFound for unknown email", func() {
		_, err := s.store.FindByEmail(s.ctx, "ghost@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
