//go:build integration

package bucket_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"roomgate/internal/ratelimit/bucket"
	"roomgate/pkg/testutil/containers"
)

type RedisBucketSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *bucket.Redis
}

func TestRedisBucketSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisBucketSuite))
}

func (s *RedisBucketSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = bucket.NewRedis(s.redis.Client)
}

func (s *RedisBucketSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisBucketSuite) TestAllowsUpToLimit() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := s.store.Allow(ctx, "ip:10.0.0.1", 3, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(2-i, result.Remaining)
	}

	result, err := s.store.Allow(ctx, "ip:10.0.0.1", 3, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
}

func (s *RedisBucketSuite) TestKeysAreIndependent() {
	ctx := context.Background()

	_, err := s.store.Allow(ctx, "ip:10.0.0.1", 1, time.Minute)
	s.Require().NoError(err)

	blocked, err := s.store.Allow(ctx, "ip:10.0.0.1", 1, time.Minute)
	s.Require().NoError(err)
	s.False(blocked.Allowed)

	other, err := s.store.Allow(ctx, "ip:10.0.0.2", 1, time.Minute)
	s.Require().NoError(err)
	s.True(other.Allowed)
}

func (s *RedisBucketSuite) TestWindowExpiryFreesSlots() {
	ctx := context.Background()

	_, err := s.store.Allow(ctx, "ip:10.0.0.1", 1, 100*time.Millisecond)
	s.Require().NoError(err)

	blocked, err := s.store.Allow(ctx, "ip:10.0.0.1", 1, 100*time.Millisecond)
	s.Require().NoError(err)
	s.False(blocked.Allowed)

	time.Sleep(120 * time.Millisecond)

	result, err := s.store.Allow(ctx, "ip:10.0.0.1", 1, 100*time.Millisecond)
	s.Require().NoError(err)
	s.True(result.Allowed)
}
