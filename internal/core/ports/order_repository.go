// Package ports defines repository interfaces for the rental order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"rentalorders/internal/core/domain/model/order"
)

// OrderFilter narrows a Find call. Every field is optional and the set
// fields combine conjunctively; the zero value matches all orders.
type OrderFilter struct {
	// Status matches orders in exactly this status.
	Status *order.Status

	// UserID matches orders placed by this user.
	UserID *int64

	// ItemID matches orders for this item.
	ItemID *int64

	// CreatedFrom and CreatedTo bound createdAt; both bounds are inclusive.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted; the only mutation after Add is the conditional
// status transition performed by Update.
type OrderRepository interface {
	// Add persists a new order aggregate and writes the store-assigned id
	// back onto the aggregate. The order must be valid and must not carry
	// an id yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status transition of an existing order. The write is
	// conditional on the status the aggregate was loaded with: if another
	// writer moved the order first, Update returns a ConcurrencyConflictError
	// and the stored state is untouched.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its store-assigned identifier.
	// Returns ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// Find retrieves all orders matching the filter, ordered by ascending id
	// so results are stable for a fixed underlying state.
	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
