package commands

import (
	"context"
	"log/slog"

	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"
	"rentalorders/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler handles administrative status updates.
// Terminal orders reject every update, including no-ops; a genuine
// transition persists the status and its audit record as one unit, while a
// no-op writes nothing and logs nothing.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for administrative
// status updates. Requires an OrderUoWFactory for transactional persistence;
// the publisher may be nil when event delivery is not configured.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the administrative status update.
// A no-op update (target equals current status) returns the order untouched,
// provided the order is not terminal. Otherwise the transition is validated,
// persisted conditionally on the loaded status, and logged atomically.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	if cmd.Status() == aggregate.Status() {
		if aggregate.Status().IsTerminal() {
			return nil, errs.NewInvalidStateError("order", aggregate.Status().String())
		}
		// Nothing changes, nothing is written, nothing is logged.
		return aggregate, nil
	}

	if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
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
