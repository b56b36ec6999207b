package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"
	"rentalorders/internal/pkg/errs"
)

// ProcessConfirmationCommandHandler is the confirmation workflow engine.
// It executes one committed job: claims it, validates and applies the
// pending -> active order transition, and records the job's terminal state.
//
// The engine never lets an error or panic escape to its caller once the job
// is claimed: every claimed execution ends with the job in exactly one
// terminal state. Request-time failures stay on the triggering call; a
// workflow-time failure is only visible by polling the job resource.
type ProcessConfirmationCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewProcessConfirmationCommandHandler creates the workflow engine handler.
// Requires a UoWFactory for transactional persistence; the publisher may be
// nil when event delivery is not configured.
func NewProcessConfirmationCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ProcessConfirmationCommandHandler {
	return ProcessConfirmationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "confirmation_workflow"),
	}
}

// Handle executes one confirmation job.
//
// Sequence:
//  1. Claim the job (pending -> running) with a conditional update. A lost
//     claim means another executor owns the job; the run ends silently.
//  2. Load the order. Missing -> job failed with order_not_found.
//  3. Order not pending -> job failed with invalid_state.
//  4. Apply pending -> active conditionally, appending the audit record in
//     the same transaction. A lost race -> job failed with invalid_state.
//  5. On success the job is marked succeeded, in that same transaction,
//     with the order's resource path as result.
//
// Any unexpected failure, panics included, converts to a failed job with
// result internal_error. The returned error is for the dispatcher's log
// only; by the time Handle returns, the job's terminal state is recorded.
func (h *ProcessConfirmationCommandHandler) Handle(ctx context.Context, cmd ProcessConfirmationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	claimed, err := h.claimJob(ctx, cmd.JobID())
	if err != nil {
		// The job is still pending; the reconciliation sweep retries it.
		return err
	}
	if !claimed {
		return nil
	}

	return h.execute(ctx, cmd.JobID())
}

// claimJob performs the conditional pending -> running transition.
// Returns false without error when the claim was lost: the job is already
// running, already terminal, or another executor won the conditional write.
func (h *ProcessConfirmationCommandHandler) claimJob(ctx context.Context, jobID kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()
	aggregate, err := jobRepo.Get(ctx, jobID)
	if err != nil {
		return false, err
	}

	if err = aggregate.Run(); err != nil {
		return false, nil
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			return false, nil
		}
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// execute runs the claimed job to its terminal state.
func (h *ProcessConfirmationCommandHandler) execute(ctx context.Context, jobID kernel.UUID) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "confirmation workflow panicked",
				"jobId", jobID.String(), "panic", r)
			err = h.markFailed(ctx, jobID, job.ResultInternalError)
		}
	}()

	confirmed, failReason, err := h.confirmOrder(ctx, jobID)
	if err != nil {
		h.logger.ErrorContext(ctx, "confirmation workflow failed",
			"jobId", jobID.String(), "error", err)
		return h.markFailed(ctx, jobID, job.ResultInternalError)
	}

	if confirmed == nil {
		return h.markFailed(ctx, jobID, failReason)
	}

	publishOrderChanged(ctx, h.publisher, h.logger, confirmed)
	return nil
}

// confirmOrder validates and applies the pending -> active transition. On
// success the order's new status, its audit record, and the succeeded job
// commit as one unit, so a poller that sees the terminal job can never read
// a stale order.
//
// A business rejection (missing order, order not pending, lost race)
// returns a nil order plus the machine-readable reason; an infrastructure
// failure returns the error itself.
func (h *ProcessConfirmationCommandHandler) confirmOrder(
	ctx context.Context,
	jobID kernel.UUID,
) (*order.Order, string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()
	aggregate, err := jobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, "", err
	}

	orderRepo := uow.OrderRepository()
	confirmed, err := orderRepo.Get(ctx, aggregate.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, job.ResultOrderNotFound, nil
		}
		return nil, "", err
	}

	if err = confirmed.Activate(); err != nil {
		return nil, job.ResultInvalidState, nil
	}

	if err = orderRepo.Update(ctx, confirmed); err != nil {
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil, job.ResultInvalidState, nil
		}
		return nil, "", err
	}

	record, err := confirmed.TransitionLog()
	if err != nil {
		return nil, "", err
	}

	if err = uow.OrderLogRepository().Add(ctx, record); err != nil {
		return nil, "", err
	}

	if err = aggregate.Succeed(job.SuccessResult(confirmed.ID())); err != nil {
		return nil, "", err
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		return nil, "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, "", err
	}

	return confirmed, "", nil
}

// markFailed records the job's terminal failure in its own transaction.
func (h *ProcessConfirmationCommandHandler) markFailed(ctx context.Context, jobID kernel.UUID, reason string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to record job failure: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()
	aggregate, err := jobRepo.Get(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to record job failure: %w", err)
	}

	if err = aggregate.Fail(reason); err != nil {
		return fmt.Errorf("failed to record job failure: %w", err)
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		return fmt.Errorf("failed to record job failure: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return fmt.Errorf("failed to record job failure: %w", err)
	}

	return nil
}
