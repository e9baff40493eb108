package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"roomgate/internal/ratelimit"
)

// Redis implements the sliding window on a Redis sorted set so limits hold
// across instances. Members are scored by arrival time; expired entries are
// trimmed before counting.
type Redis struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error) {
	now := time.Now()
	cutoff := now.Add(-window)
	redisKey := "ratelimit:" + key

	// Trim, count, conditionally add, and refresh expiry in one round trip.
	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit window trim: %w", err)
	}

	count := int(countCmd.Val())
	result := &ratelimit.Result{
		Limit:   limit,
		ResetAt: now.Add(window),
	}

	if count >= limit {
		return result, nil
	}

	pipe = s.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	})
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit record: %w", err)
	}

	result.Allowed = true
	result.Remaining = limit - count - 1
	return result, nil
}
