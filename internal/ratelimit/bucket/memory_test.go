package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *InMemorySuite) TestAllowsUpToLimit() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := s.store.Allow(ctx, "ip:10.0.0.1", 3, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(3, result.Limit)
		s.Equal(2-i, result.Remaining)
	}

	result, err := s.store.Allow(ctx, "ip:10.0.0.1", 3, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(0, result.Remaining)
	s.WithinDuration(time.Now().Add(time.Minute), result.ResetAt, 5*time.Second)
}

func (s *InMemorySuite) TestKeysAreIndependent() {
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := s.store.Allow(ctx, "ip:10.0.0.1", 2, time.Minute)
		s.Require().NoError(err)
	}

	blocked, err := s.store.Allow(ctx, "ip:10.0.0.1", 2, time.Minute)
	s.Require().NoError(err)
	s.False(blocked.Allowed)

	other, err := s.store.Allow(ctx, "ip:10.0.0.2", 2, time.Minute)
	s.Require().NoError(err)
	s.True(other.Allowed)
}

func (s *InMemorySuite) TestWindowExpiryFreesSlots() {
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := s.store.Allow(ctx, "ip:10.0.0.1", 2, 50*time.Millisecond)
		s.Require().NoError(err)
	}

	blocked, err := s.store.Allow(ctx, "ip:10.0.0.1", 2, 50*time.Millisecond)
	s.Require().NoError(err)
	s.False(blocked.Allowed)

	time.Sleep(60 * time.Millisecond)

	result, err := s.store.Allow(ctx, "ip:10.0.0.1", 2, 50*time.Millisecond)
	s.Require().NoError(err)
	s.True(result.Allowed)
}
