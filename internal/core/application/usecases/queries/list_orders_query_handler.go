package queries

import (
	"context"

	"rentalorders/internal/core/ports"
)

// ListOrdersQueryHandler retrieves filtered orders through the repository
// port. Results come back ordered by ascending id, so the output is stable
// for a fixed underlying state.
type ListOrdersQueryHandler struct {
	orders ports.OrderRepository
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(orders ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle executes the listing. An empty result is an empty slice, not nil.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.orders.Find(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		orders = append(orders, newOrderResponse(aggregate))
	}

	return orders, nil
}
