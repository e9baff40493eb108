package bucket

import (
	"context"
	"sync"
	"time"

	"roomgate/internal/ratelimit"
)

// InMemory implements a sliding-window limiter in process memory. Used when
// Redis is not configured; counts are per instance, not distributed.
type InMemory struct {
	mu      sync.Mutex
	buckets map[string]*window
}

type window struct {
	timestamps []time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{buckets: make(map[string]*window)}
}

func (s *InMemory) Allow(_ context.Context, key string, limit int, windowSize time.Duration) (*ratelimit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, ok := s.buckets[key]
	if !ok {
		w = &window{}
		s.buckets[key] = w
	}
	w.evict(now.Add(-windowSize))

	result := &ratelimit.Result{
		Limit:   limit,
		ResetAt: now.Add(windowSize),
	}
	if len(w.timestamps) > 0 {
		result.ResetAt = w.timestamps[0].Add(windowSize)
	}

	if len(w.timestamps) >= limit {
		return result, nil
	}

	w.timestamps = append(w.timestamps, now)
	result.Allowed = true
	result.Remaining = limit - len(w.timestamps)
	return result, nil
}

func (w *window) evict(cutoff time.Time) {
	kept := w.timestamps[:0]
	for _, ts := range w.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.timestamps = kept
}
