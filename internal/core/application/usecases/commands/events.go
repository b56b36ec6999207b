package commands

import (
	"context"
	"log/slog"

	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"
)

// publishOrderChanged emits an order-changed event for the most recent
// committed transition of the aggregate. Publishing is best-effort: it runs
// after the transaction commits, failures are logged and dropped, and the
// caller's result is never affected.
func publishOrderChanged(
	ctx context.Context,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
) {
	if publisher == nil {
		return
	}

	event := ports.OrderChangedEvent{
		OrderID:    aggregate.ID(),
		UserID:     aggregate.UserID(),
		ItemID:     aggregate.ItemID(),
		FromStatus: aggregate.PreviousStatus().String(),
		ToStatus:   aggregate.Status().String(),
		ChangedAt:  aggregate.UpdatedAt(),
	}

	if err := publisher.PublishOrderChanged(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish order changed event",
			"orderId", aggregate.ID(), "error", err)
	}
}
