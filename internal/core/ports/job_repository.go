package ports

import (
	"context"
	"time"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for confirmation jobs.
// After Add the only mutation is the conditional status transition
// performed by Update; terminal jobs are never rewritten.
type JobRepository interface {
	// Add persists a new pending job. The job must be valid and carries an
	// application-minted id.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists a status transition of an existing job. The write is
	// conditional on the status the aggregate was loaded with, which makes
	// the pending -> running claim safe against duplicate executors: the
	// loser receives a ConcurrencyConflictError.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job by its identifier.
	// Returns ObjectNotFoundError if no such job exists.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetAllPendingBefore retrieves jobs still pending that were created
	// before the cutoff. The reconciliation sweep uses it to find jobs
	// committed but never handed to an executor.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*job.Job, error)
}
