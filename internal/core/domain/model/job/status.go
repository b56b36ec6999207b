package job

import (
	"fmt"

	"rentalorders/internal/pkg/errs"
)

// Status represents the lifecycle state of a confirmation job.
//
// State transitions:
//
//	pending ──> running ──┬──> succeeded
//	                      └──> failed
//
// A job is claimed by the workflow engine (pending -> running) and always
// ends in exactly one terminal state. succeeded and failed admit no further
// transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a job committed but not yet claimed
	// by an executor.
	Pending

	// Running indicates an executor has claimed the job and is working on it.
	Running

	// Succeeded indicates the job finished and the order was confirmed.
	// This is a terminal state.
	Succeeded

	// Failed indicates the job finished without confirming the order.
	// This is a terminal state; the result explains why.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Running:   "running",
		Succeeded: "succeeded",
		Failed:    "failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Running:   "running",
		Succeeded: "succeeded",
		Failed:    "failed",
	}
}

// StatusFromString parses the lowercase wire representation of a job status.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid job status", value),
	)
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Running, Succeeded, Failed.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid job status", s))
	}
	return nil
}

// String returns the lowercase wire representation of the status.
// Invalid values yield "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
// Succeeded and Failed are terminal; the polling surface answers 200 for
// them and 202 for everything else.
func (s Status) IsTerminal() bool {
	return s == Succeeded || s == Failed
}

// Run transitions the status to Running, claiming the job for execution.
//
// Valid transitions:
//   - Pending -> Running
//
// Returns:
//   - (Running, nil) on valid transition
//   - (0, error) if the job is not pending
func (s Status) Run() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateErrorWithCause(
			"job",
			s.String(),
			fmt.Errorf("%s is not a valid status to run", s.String()),
		)
	}

	return Running, nil
}

// Succeed transitions the status to Succeeded.
//
// Valid transitions:
//   - Running -> Succeeded
//
// Returns:
//   - (Succeeded, nil) on valid transition
//   - (0, error) if the job is not running
func (s Status) Succeed() (Status, error) {
	if s != Running {
		return 0, errs.NewInvalidStateErrorWithCause(
			"job",
			s.String(),
			fmt.Errorf("%s is not a valid status to succeed", s.String()),
		)
	}

	return Succeeded, nil
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - Running -> Failed
//
// Returns:
//   - (Failed, nil) on valid transition
//   - (0, error) if the job is not running
func (s Status) Fail() (Status, error) {
	if s != Running {
		return 0, errs.NewInvalidStateErrorWithCause(
			"job",
			s.String(),
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}

	return Failed, nil
}
