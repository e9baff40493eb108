package membership

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"roomgate/internal/access/models"
	"roomgate/pkg/platform/sentinel"
)

type MembershipStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MembershipStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMembershipStoreSuite(t *testing.T) {
	suite.Run(t, new(MembershipStoreSuite))
}

func (s *MembershipStoreSuite) TestLookups() {
	roomID := uuid.NewString()
	userID := uuid.NewString()

	s.Run("finds record by room and user", func() {
		s.store.Add(roomID, userID, models.Membership{Role: models.RoleSpeaker, IsBanned: false})

		found, err := s.store.FindByRoomAndUser(s.ctx, roomID, userID)
		s.Require().NoError(err)
		s.Equal(models.RoleSpeaker, found.Role)
		s.False(found.IsBanned)
	})

	s.Run("returns ErrNotFound when no record exists", func() {
		_, err := s.store.FindByRoomAndUser(s.ctx, uuid.NewString(), userID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("keeps ban flag with stored role", func() {
		s.store.Add(roomID, userID, models.Membership{Role: models.RoleHost, IsBanned: true})

		found, err := s.store.FindByRoomAndUser(s.ctx, roomID, userID)
		s.Require().NoError(err)
		s.Equal(models.RoleHost, found.Role)
		s.True(found.IsBanned)
	})
}
