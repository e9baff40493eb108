// Package kafka publishes audit events to a Kafka topic via franz-go.
//
// Emission is asynchronous and fire-and-forget: an access decision must never
// block on, or fail because of, the audit sink. Delivery failures are logged
// and counted, not propagated.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"roomgate/pkg/platform/audit"
)

// Publisher emits audit events to a Kafka topic.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New connects to the given seed brokers and ensures the topic exists.
// The single-partition default is fine for an audit stream ordered by
// arrival; operators scale it out-of-band when needed.
func New(ctx context.Context, seeds []string, topic string, opts ...Option) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopic(ctx, 1, -1, nil, topic); err != nil {
		// Existing topics are fine; anything else is a real setup failure.
		if !isTopicExists(err) {
			client.Close()
			return nil, fmt.Errorf("ensure audit topic %q: %w", topic, err)
		}
	}

	p := &Publisher{
		client: client,
		topic:  topic,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Emit serializes the event and produces it keyed by subject so per-user
// history stays ordered within a partition.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "marshal audit event", "error", err, "action", event.Action)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.Subject),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("produce audit event", "error", err, "action", event.Action)
		}
	})
}

// Close flushes buffered records and releases the client.
func (p *Publisher) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		p.client.Close()
		return fmt.Errorf("flush audit events: %w", err)
	}
	p.client.Close()
	return nil
}

func isTopicExists(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "TOPIC_ALREADY_EXISTS")
}
