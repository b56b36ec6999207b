// Package kafka publishes order lifecycle events to a Kafka broker.
// Delivery is best-effort by design: callers publish after their
// transaction commits, log failures, and never fail the request over a
// broker problem.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"rentalorders/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the seam between the publisher and kafka-go, so unit
// tests can capture messages without a broker.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedPublisher implements ports.OrderEventPublisher over a Kafka
// topic. Messages are keyed by order id, so all events of one order land in
// one partition in order.
type OrderChangedPublisher struct {
	writer messageWriter
}

// NewOrderChangedPublisher creates a publisher writing to the given broker
// host and topic.
func NewOrderChangedPublisher(host string, topic string) *OrderChangedPublisher {
	return &OrderChangedPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(host),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// PublishOrderChanged emits one event for a committed status transition.
func (p *OrderChangedPublisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: value,
	})
}

// Close releases the underlying writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher implements ports.OrderEventPublisher without a broker.
// Selected when no Kafka host is configured.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that silently discards events.
func NewNopPublisher() NopPublisher {
	return NopPublisher{}
}

// PublishOrderChanged discards the event.
func (NopPublisher) PublishOrderChanged(_ context.Context, _ ports.OrderChangedEvent) error {
	return nil
}

// Close is a no-op.
func (NopPublisher) Close() error {
	return nil
}
