package queries

import (
	"errors"

	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/pkg/guard"
)

var (
	ErrGetJobQueryIsNotConstructed = errors.New(
		"GetJobQuery must be created via NewGetJobQuery constructor",
	)
)

// GetJobQuery retrieves the current state of one confirmation job. This is
// the polling query: clients repeat it until the job reports a terminal
// status, after which the response never changes again.
type GetJobQuery struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetJobQuery creates a query for the given job.
// Validates that the job id is a constructed UUID.
func NewGetJobQuery(jobID kernel.UUID) (GetJobQuery, error) {
	query := GetJobQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setJobID(jobID); err != nil {
		return GetJobQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetJobQueryIsNotConstructed if validation fails.
func (q GetJobQuery) Validate() error {
	return q.guard.Validate(ErrGetJobQueryIsNotConstructed)
}

// JobID returns the identifier of the requested job.
func (q GetJobQuery) JobID() kernel.UUID {
	return q.jobID
}

func (q *GetJobQuery) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	q.jobID = jobID
	return nil
}
