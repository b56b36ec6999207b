package order

import (
	"fmt"

	"rentalorders/internal/pkg/errs"
)

// Status represents the lifecycle state of a rental order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	pending ──┬──> active ──> returned
//	          │       │
//	          │       └─────> cancelled
//	          └─────────────> cancelled
//
// The nominal flow is pending -> active -> returned. Cancellation moves a
// pending order to cancelled. Administrative updates may take any
// non-terminal order to any valid status; returned and cancelled are
// terminal and admit no outgoing transitions at all.
//
// Status is a value object that validates state transitions and provides
// the lowercase wire representation used by the API and the stores.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status await confirmation or cancellation.
	Pending

	// Active indicates the rental has been confirmed and is in progress.
	Active

	// Returned indicates the rented item has been returned.
	// This is a terminal state with no further transitions allowed.
	Returned

	// Cancelled indicates the order was cancelled before activation.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Active:    "active",
		Returned:  "returned",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Active:    "active",
		Returned:  "returned",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses the lowercase wire representation of a status.
//
// Returns:
//   - the matching Status for "pending", "active", "returned", "cancelled"
//   - an error for any other input, before any store interaction happens
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status", value),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Active, Returned, Cancelled.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase wire representation of the status.
//
// Returns:
//   - "pending", "active", "returned", or "cancelled" for valid statuses
//   - "unknown" for invalid status values
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no outgoing transitions.
// Returned and Cancelled are terminal; every other value is not.
func (s Status) IsTerminal() bool {
	return s == Returned || s == Cancelled
}

// CanTransition reports whether a transition from the current status to
// next is allowed. A transition is allowed if and only if the current
// status is a valid non-terminal status and next is a valid status.
//
// This is a pure predicate with no side effects; the transition methods
// below enforce the narrower rules of specific operations.
func (s Status) CanTransition(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil {
		return false
	}
	return !s.IsTerminal()
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//
// Every other starting status is rejected: active rentals cannot be
// cancelled through this operation, and terminal statuses admit no
// transitions at all.
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error) if cancellation is not allowed from the current status
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order",
			s.String(),
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}

// Activate transitions the status to Active.
//
// Valid transitions:
//   - Pending -> Active
//
// This transition belongs to the confirmation workflow and is narrower
// than the administrative update: only pending orders can be confirmed.
//
// Returns:
//   - (Active, nil) on valid transition
//   - (0, error) if confirmation is not allowed from the current status
func (s Status) Activate() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order",
			s.String(),
			fmt.Errorf("%s is not a valid status to confirm", s.String()),
		)
	}

	return Active, nil
}

// TransitionTo performs the administrative transition to next.
//
// Valid transitions:
//   - any valid non-terminal status -> any valid status
//
// Invalid transitions:
//   - next is not a valid status (rejected with a validation error)
//   - the current status is terminal or invalid
//
// Returns:
//   - (next, nil) on valid transition
//   - (0, error) if the transition is not allowed
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransition(next) {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order",
			s.String(),
			fmt.Errorf("%s is not a valid status to update", s.String()),
		)
	}

	return next, nil
}
