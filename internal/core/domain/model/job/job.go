package job

import (
	"errors"
	"fmt"
	"time"

	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through the NewJob factory method or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
)

// Machine-readable results recorded on failed jobs.
const (
	ResultOrderNotFound = "order_not_found"
	ResultInvalidState  = "invalid_state"
	ResultInternalError = "internal_error"
)

// SuccessResult builds the result recorded on a succeeded job: the resource
// path of the confirmed order.
func SuccessResult(orderID int64) string {
	return fmt.Sprintf("/orders/%d", orderID)
}

// Job represents one asynchronous confirmation attempt for an order. Jobs are
// identified by an application-minted UUID, start in Pending, and always end
// in exactly one terminal state carrying a machine-readable result.
//
// Job follows these invariants:
//   - Must have a valid UUID and a positive order id
//   - Status transitions follow the rules enforced by Status
//   - The result is set exactly when the job reaches a terminal state
//   - Can only be created through NewJob or RestoreJob
type Job struct {
	// id is the application-minted identifier
	id kernel.UUID

	// orderID is the order this confirmation attempt belongs to
	orderID int64

	// status represents the current state in the job lifecycle
	status Status

	// previousStatus is the status the store last observed for this job.
	// Conditional updates compare against it, which makes the running claim
	// safe against duplicate executors.
	previousStatus Status

	// result is nil until the job reaches a terminal state
	result *string

	// createdAt is the creation timestamp (UTC), used to find orphaned
	// pending jobs
	createdAt time.Time

	// isConstructed ensures the job was created via a constructor
	isConstructed bool
}

// NewJob creates a new pending Job for the given order.
//
// Parameters:
//   - id: application-minted identifier (must be a valid UUID)
//   - orderID: the order to confirm (must be positive)
//
// Returns:
//   - *Job: the created job if all validations pass
//   - error: validation error if any parameter is invalid
func NewJob(id kernel.UUID, orderID int64) (*Job, error) {
	j := &Job{
		status:         Pending,
		previousStatus: Pending,
		createdAt:      time.Now().UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob reconstructs a Job from persisted state. The restored job
// remembers its stored status for conditional updates.
func RestoreJob(id kernel.UUID, orderID int64, status Status, result *string, createdAt time.Time) *Job {
	return &Job{
		id:             id,
		orderID:        orderID,
		status:         status,
		previousStatus: status,
		result:         result,
		createdAt:      createdAt,
		isConstructed:  true,
	}
}

// Validate ensures the Job instance was properly constructed.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}

	return nil
}

// IsEqual compares two jobs by their identifiers.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// OrderID returns the identifier of the order this job confirms.
func (j *Job) OrderID() int64 {
	return j.orderID
}

// Status returns the current status of the job.
func (j *Job) Status() Status {
	return j.status
}

// PreviousStatus returns the status the store last observed for this job.
func (j *Job) PreviousStatus() Status {
	return j.previousStatus
}

// Result returns the terminal result, or nil while the job is in progress.
func (j *Job) Result() *string {
	return j.result
}

// CreatedAt returns the creation timestamp (UTC).
func (j *Job) CreatedAt() time.Time {
	return j.createdAt
}

// IsTerminal reports whether the job reached a terminal state.
func (j *Job) IsTerminal() bool {
	return j.status.IsTerminal()
}

// Run claims the job for execution, moving it from Pending to Running.
// The claim becomes effective only once the store accepts the conditional
// update; a lost claim surfaces there as a concurrency conflict.
func (j *Job) Run() error {
	newStatus, err := j.status.Run()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Succeed marks the job as succeeded with the given result.
//
// Business rules:
//   - Only running jobs can succeed
//   - Succeeded is a terminal state
func (j *Job) Succeed(result string) error {
	newStatus, err := j.status.Succeed()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.result = &result
	return nil
}

// Fail marks the job as failed with the given machine-readable reason.
//
// Business rules:
//   - Only running jobs can fail
//   - Failed is a terminal state
func (j *Job) Fail(reason string) error {
	newStatus, err := j.status.Fail()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.result = &reason
	return nil
}

// setID validates and sets the job's identifier.
// This is a private method used only during construction.
func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

// setOrderID validates and sets the owning order's identifier.
// This is a private method used only during construction.
func (j *Job) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId is invalid", fmt.Errorf("%d is not greater than 0", orderID))
	}
	j.orderID = orderID
	return nil
}
