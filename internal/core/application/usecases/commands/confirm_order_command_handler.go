package commands

import (
	"context"
	"fmt"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/pkg/errs"
)

// ConfirmOrderCommandHandler handles the synchronous part of order
// confirmation: it validates eligibility, commits a pending job bound to
// the order, and hands the job to the asynchronous executor. The handler
// returns as soon as the job is dispatched, without waiting for the
// workflow to finish.
type ConfirmOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ConfirmationDispatcher
}

// NewConfirmOrderCommandHandler creates a handler for confirmation requests.
// Requires a UoWFactory for transactional persistence and a dispatcher that
// executes committed jobs out-of-band.
func NewConfirmOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher ConfirmationDispatcher,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the confirmation request.
// A missing order fails with not-found and an order outside pending with
// invalid-state, both synchronously and before any job is created. On
// success the pending job is committed first and dispatched after, so a
// crash between the two leaves a pending job for the reconciliation sweep
// to pick up rather than a dispatched job that was never persisted.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*job.Job, error) {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if aggregate.Status() != order.Pending {
		return nil, errs.NewInvalidStateErrorWithCause(
			"order",
			aggregate.Status().String(),
			fmt.Errorf("%s is not a valid status to confirm", aggregate.Status().String()),
		)
	}

	newJob, err := job.NewJob(kernel.NewUUID(), aggregate.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.JobRepository().Add(ctx, newJob); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(newJob)
	return newJob, nil
}
