package ports

import (
	"context"
	"time"
)

// OrderChangedEvent describes one committed status transition of an order,
// creation included (published as pending -> pending).
type OrderChangedEvent struct {
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id"`
	ItemID     int64     `json:"item_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedAt  time.Time `json:"changed_at"`
}

// OrderEventPublisher publishes order lifecycle events to interested
// consumers. Publishing is best-effort after commit: a failed publish is
// logged by the caller and never rolls back the transaction it describes.
type OrderEventPublisher interface {
	// PublishOrderChanged emits one event for a committed status transition.
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error

	// Close releases the underlying transport resources.
	Close() error
}
