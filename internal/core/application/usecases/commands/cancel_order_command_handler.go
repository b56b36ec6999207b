package commands

import (
	"context"
	"log/slog"

	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"
)

// CancelOrderCommandHandler handles the business logic for order cancellation.
// Only pending orders can be cancelled; the status write and the
// pending -> cancelled audit record commit as one unit.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// Requires an OrderUoWFactory for transactional persistence; the publisher
// may be nil when event delivery is not configured.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
// Loads the order, applies the pending -> cancelled transition, and persists
// the new status together with its audit record. A missing order and an
// order outside pending surface as distinct errors; a concurrent writer that
// moved the order first surfaces as a concurrency conflict.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	record, err := aggregate.TransitionLog()
	if err != nil {
		return nil, err
	}

	if err = uow.OrderLogRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishOrderChanged(ctx, h.publisher, h.logger, aggregate)
	return aggregate, nil
}
