package jobs

import (
	"context"
	"log/slog"
	"sync"

	"rentalorders/internal/core/application/usecases/commands"
	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
)

// ConfirmationDispatcher executes committed confirmation jobs out-of-band.
// A bounded worker pool drains a channel; when the queue is full, Dispatch
// falls back to a dedicated goroutine instead of blocking the caller or
// dropping the job. Execution uses a background context, so cancellation of
// the request that triggered the job has no effect on an already-dispatched
// run.
type ConfirmationDispatcher struct {
	handler commands.ProcessConfirmationCommandHandler
	logger  *slog.Logger

	workers int
	queue   chan kernel.UUID

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewConfirmationDispatcher creates a dispatcher with the given worker count.
// Workers do not run until Start is called.
func NewConfirmationDispatcher(
	handler commands.ProcessConfirmationCommandHandler,
	workers int,
	logger *slog.Logger,
) *ConfirmationDispatcher {
	if workers < 1 {
		workers = 1
	}

	return &ConfirmationDispatcher{
		handler: handler,
		logger:  logger.With("component", "confirmation_dispatcher"),
		workers: workers,
		queue:   make(chan kernel.UUID, workers*4),
	}
}

// Start launches the worker pool.
func (d *ConfirmationDispatcher) Start() {
	for range d.workers {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for jobID := range d.queue {
				d.run(jobID)
			}
		}()
	}

	d.logger.Info("confirmation dispatcher started", "workers", d.workers)
}

// Dispatch hands a committed job to the pool without blocking on its
// execution. After Stop the job is not executed here; it stays pending in
// the store and the reconciliation sweep picks it up on the next start.
func (d *ConfirmationDispatcher) Dispatch(aggregate *job.Job) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("dispatcher stopped, job left for the reconciliation sweep",
			"jobId", aggregate.ID().String())
		return
	}

	select {
	case d.queue <- aggregate.ID():
	default:
		// Queue full: run on a dedicated goroutine rather than block or drop.
		d.wg.Add(1)
		go func(jobID kernel.UUID) {
			defer d.wg.Done()
			d.run(jobID)
		}(aggregate.ID())
	}
}

// Stop closes the queue and waits for in-flight executions to finish.
func (d *ConfirmationDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("confirmation dispatcher stopped")
}

func (d *ConfirmationDispatcher) run(jobID kernel.UUID) {
	ctx := context.Background()

	cmd, err := commands.NewProcessConfirmationCommand(jobID)
	if err != nil {
		d.logger.ErrorContext(ctx, "invalid confirmation job id", "jobId", jobID.String(), "error", err)
		return
	}

	if err := d.handler.Handle(ctx, cmd); err != nil {
		d.logger.ErrorContext(ctx, "confirmation job execution failed", "jobId", jobID.String(), "error", err)
	}
}
