package audit

import (
	"context"
	"sync"
)

// MemoryPublisher buffers events in memory. Used in tests and when no broker
// is configured; bounded so an unconfigured deployment cannot grow without
// limit.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// NewMemoryPublisher creates a bounded in-memory publisher.
func NewMemoryPublisher(limit int) *MemoryPublisher {
	if limit <= 0 {
		limit = 1024
	}
	return &MemoryPublisher{limit: limit}
}

func (p *MemoryPublisher) Emit(_ context.Context, event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) >= p.limit {
		p.events = p.events[1:]
	}
	p.events = append(p.events, event)
}

// Events returns a copy of everything emitted so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}
