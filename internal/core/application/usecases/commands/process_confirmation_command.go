package commands

import (
	"errors"

	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/pkg/guard"
)

var (
	ErrProcessConfirmationCommandIsNotConstructed = errors.New(
		"ProcessConfirmationCommand must be created via NewProcessConfirmationCommand constructor",
	)
)

// ProcessConfirmationCommand represents one asynchronous execution of a
// confirmation job. It is issued by the dispatcher, never by a client.
type ProcessConfirmationCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessConfirmationCommand creates a command to execute the given job.
// Validates that the job id is a constructed UUID.
func NewProcessConfirmationCommand(jobID kernel.UUID) (ProcessConfirmationCommand, error) {
	processCommand := ProcessConfirmationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := processCommand.setJobID(jobID); err != nil {
		return ProcessConfirmationCommand{}, err
	}

	return processCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessConfirmationCommandIsNotConstructed if validation fails.
func (c ProcessConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrProcessConfirmationCommandIsNotConstructed)
}

// JobID returns the identifier of the job to execute.
func (c ProcessConfirmationCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *ProcessConfirmationCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
