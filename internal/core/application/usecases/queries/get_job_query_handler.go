package queries

import (
	"context"

	"rentalorders/internal/core/ports"
)

// GetJobQueryHandler retrieves one confirmation job through the repository
// port. Jobs are never rewritten after reaching a terminal state, so a
// terminal response is stable across repeated polls.
type GetJobQueryHandler struct {
	jobs ports.JobRepository
}

// NewGetJobQueryHandler creates a handler for job polling lookups.
func NewGetJobQueryHandler(jobs ports.JobRepository) GetJobQueryHandler {
	return GetJobQueryHandler{jobs: jobs}
}

// Handle executes the lookup. A missing job surfaces as an
// ObjectNotFoundError from the repository.
func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (JobResponse, error) {
	if err := query.Validate(); err != nil {
		return JobResponse{}, err
	}

	aggregate, err := h.jobs.Get(ctx, query.JobID())
	if err != nil {
		return JobResponse{}, err
	}

	return newJobResponse(aggregate), nil
}
