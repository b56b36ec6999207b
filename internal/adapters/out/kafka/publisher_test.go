package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rentalorders/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingWriter struct {
	messages []kafka.Message
	writeErr error
	closed   bool
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *capturingWriter) Close() error {
	w.closed = true
	return nil
}

func TestOrderChangedPublisher_PublishOrderChanged(t *testing.T) {
	writer := &capturingWriter{}
	publisher := &OrderChangedPublisher{writer: writer}

	event := ports.OrderChangedEvent{
		OrderID:    11,
		UserID:     7,
		ItemID:     42,
		FromStatus: "pending",
		ToStatus:   "active",
		ChangedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.PublishOrderChanged(t.Context(), event))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, []byte("11"), writer.messages[0].Key)

	var decoded ports.OrderChangedEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestOrderChangedPublisher_WriteFailureSurfaces(t *testing.T) {
	writer := &capturingWriter{writeErr: errors.New("broker unreachable")}
	publisher := &OrderChangedPublisher{writer: writer}

	err := publisher.PublishOrderChanged(t.Context(), ports.OrderChangedEvent{OrderID: 11})
	require.Error(t, err)
	assert.Empty(t, writer.messages)
}

func TestOrderChangedPublisher_Close(t *testing.T) {
	writer := &capturingWriter{}
	publisher := &OrderChangedPublisher{writer: writer}

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestNopPublisher(t *testing.T) {
	publisher := NewNopPublisher()

	assert.NoError(t, publisher.PublishOrderChanged(t.Context(), ports.OrderChangedEvent{OrderID: 11}))
	assert.NoError(t, publisher.Close())
}
