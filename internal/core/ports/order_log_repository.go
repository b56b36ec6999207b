package ports

import (
	"context"

	"rentalorders/internal/core/domain/model/order"
)

// OrderLogRepository defines the persistence contract for the append-only
// audit trail. Records are written exactly once per committed status
// transition and are never updated or removed.
type OrderLogRepository interface {
	// Add appends an audit record. The record must be valid; the store
	// assigns its identifier.
	Add(ctx context.Context, record *order.OrderLog) error

	// GetAllForOrder retrieves the audit trail of one order, ordered by
	// (timestamp ASC, logId ASC).
	GetAllForOrder(ctx context.Context, orderID int64) ([]*order.OrderLog, error)
}
