package room

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

type RoomStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *RoomStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestRoomStoreSuite(t *testing.T) {
	suite.Run(t, new(RoomStoreSuite))
}

func (s *RoomStoreSuite) TestLookups() {
	s.Run("finds room by slug with status and provider ref", func() {
		r := models.Room{
			ID:          uuid.NewString(),
			Slug:        "main-stage",
			ExternalRef: "provider-abc",
			Status:      models.RoomStatusLive,
		}
		s.store.Add(r)

		found, err := s.store.FindBySlug(s.ctx, "main-stage")
		s.Require().NoError(err)
		s.Equal(r.ID, found.ID)
		s.Equal("provider-abc", found.ExternalRef)
		s.Equal(models.RoomStatusLive, found.Status)
	})

	s.Run("returns ErrNotFound for unknown slug", func() {
		_, err := s.store.FindBySlug(s.ctx, "ghost")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
