package queries

import (
	"context"

	"rentalorders/internal/core/ports"
)

// GetOrderLogsQueryHandler retrieves an order's audit trail through the
// repository ports. The order is loaded first so an unknown id surfaces as
// not-found rather than an empty trail.
type GetOrderLogsQueryHandler struct {
	orders ports.OrderRepository
	logs   ports.OrderLogRepository
}

// NewGetOrderLogsQueryHandler creates a handler for audit trail lookups.
func NewGetOrderLogsQueryHandler(orders ports.OrderRepository, logs ports.OrderLogRepository) GetOrderLogsQueryHandler {
	return GetOrderLogsQueryHandler{orders: orders, logs: logs}
}

// Handle executes the lookup. Records come back ordered by
// (timestamp ASC, logId ASC); every order has at least its creation record.
func (h GetOrderLogsQueryHandler) Handle(ctx context.Context, query GetOrderLogsQuery) ([]OrderLogResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.orders.Get(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	records, err := h.logs.GetAllForOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	logs := make([]OrderLogResponse, 0, len(records))
	for _, record := range records {
		logs = append(logs, newOrderLogResponse(record))
	}

	return logs, nil
}
