package order

import (
	"errors"
	"fmt"
	"time"

	"rentalorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Placeholder amounts applied to every new order until pricing is wired in.
const (
	placeholderTotalRent = 499.99
	placeholderDeposit   = 1000.00
)

// Order represents a rental order in the system. It is the aggregate root that
// manages the order lifecycle from creation through confirmation to return or
// cancellation.
//
// Order follows these invariants:
//   - userId and itemId must be positive
//   - The rental period must have both a start and an end date
//   - Status transitions follow the rules enforced by Status
//   - updatedAt changes on every genuine transition and only then
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. The store-assigned id is zero
// until the order has been persisted.
type Order struct {
	// id is the store-assigned identifier (zero before the first save)
	id int64

	// userID identifies the renting user
	userID int64

	// itemID identifies the rented item
	itemID int64

	// startDate and endDate bound the rental period (date precision)
	startDate time.Time
	endDate   time.Time

	// totalRent and deposit are fixed placeholder amounts
	totalRent float64
	deposit   float64

	// status represents the current state in the order lifecycle
	status Status

	// previousStatus is the status the store last observed for this order.
	// Conditional updates compare against it, and the audit record built by
	// TransitionLog uses it as the from side.
	previousStatus Status

	// createdAt and updatedAt are UTC timestamps maintained by the aggregate
	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way
// to create an order that has not been persisted yet.
//
// The order starts in Pending status with the placeholder rent and deposit
// amounts, and createdAt equal to updatedAt. The id stays zero until the
// store assigns one.
//
// Parameters:
//   - userID: the renting user (must be positive)
//   - itemID: the rented item (must be positive)
//   - startDate, endDate: the rental period (both required)
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: validation error if any parameter is invalid
func NewOrder(userID int64, itemID int64, startDate time.Time, endDate time.Time) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:         Pending,
		previousStatus: Pending,
		totalRent:      placeholderTotalRent,
		deposit:        placeholderDeposit,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		order.setUserID(userID),
		order.setItemID(itemID),
		order.setRentalPeriod(startDate, endDate),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state. It bypasses the
// creation-time validation because the stored values already passed it; the
// restored order remembers its stored status for conditional updates.
func RestoreOrder(
	id int64,
	userID int64,
	itemID int64,
	startDate time.Time,
	endDate time.Time,
	totalRent float64,
	deposit float64,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) *Order {
	return &Order{
		id:             id,
		userID:         userID,
		itemID:         itemID,
		startDate:      startDate,
		endDate:        endDate,
		totalRent:      totalRent,
		deposit:        deposit,
		status:         status,
		previousStatus: status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}
}

// AssignID records the store-assigned identifier on a freshly created order.
// It is called exactly once, by the repository that persisted the order;
// an order that already has an id rejects the call.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already has id %d", o.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}

	o.id = id
	return nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their store-assigned identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the store-assigned identifier (zero before the first save).
func (o *Order) ID() int64 {
	return o.id
}

// UserID returns the identifier of the renting user.
func (o *Order) UserID() int64 {
	return o.userID
}

// ItemID returns the identifier of the rented item.
func (o *Order) ItemID() int64 {
	return o.itemID
}

// StartDate returns the first day of the rental period.
func (o *Order) StartDate() time.Time {
	return o.startDate
}

// EndDate returns the last day of the rental period.
func (o *Order) EndDate() time.Time {
	return o.endDate
}

// TotalRent returns the total rent amount for the order.
func (o *Order) TotalRent() float64 {
	return o.totalRent
}

// Deposit returns the deposit amount held for the order.
func (o *Order) Deposit() float64 {
	return o.deposit
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PreviousStatus returns the status the store last observed for this order.
// After a transition it still reports the pre-transition status; for a new
// or freshly restored order it equals Status.
func (o *Order) PreviousStatus() Status {
	return o.previousStatus
}

// CreatedAt returns the creation timestamp (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last transition (UTC).
// For an order that never transitioned it equals CreatedAt.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Cancel cancels the order.
//
// Business rules:
//   - Only pending orders can be cancelled
//   - Cancelled is a terminal state with no further transitions
//
// On success the status becomes Cancelled and updatedAt is bumped.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// Activate confirms the order, moving it from Pending to Active.
//
// This is the confirmation workflow's transition; administrative updates go
// through ChangeStatus instead.
//
// On success the status becomes Active and updatedAt is bumped.
func (o *Order) Activate() error {
	newStatus, err := o.status.Activate()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// ChangeStatus performs the administrative status update.
//
// Business rules:
//   - The current status must be non-terminal
//   - next must be a valid status (terminal targets allowed)
//
// Callers are expected to treat next == Status() as a no-op and skip the
// call entirely; ChangeStatus itself always records a transition.
//
// On success the status becomes next and updatedAt is bumped.
func (o *Order) ChangeStatus(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// TransitionLog builds the audit record for the most recent transition: from
// PreviousStatus to Status at UpdatedAt. For a freshly stored order it yields
// the creation record (pending -> pending). Call it only after the order has
// its store-assigned id.
func (o *Order) TransitionLog() (*OrderLog, error) {
	return NewOrderLog(o.id, o.previousStatus, o.status, o.updatedAt)
}

// setUserID validates and sets the renting user's identifier.
// This is a private method used only during construction.
func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("userId is invalid", fmt.Errorf("%d is not greater than 0", userID))
	}
	o.userID = userID
	return nil
}

// setItemID validates and sets the rented item's identifier.
// This is a private method used only during construction.
func (o *Order) setItemID(itemID int64) error {
	if itemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("itemId is invalid", fmt.Errorf("%d is not greater than 0", itemID))
	}
	o.itemID = itemID
	return nil
}

// setRentalPeriod validates and sets the rental period bounds.
// Both dates are required; their ordering is not constrained here.
// This is a private method used only during construction.
func (o *Order) setRentalPeriod(startDate time.Time, endDate time.Time) error {
	if startDate.IsZero() {
		return errs.NewValueIsRequiredError("startDate")
	}
	if endDate.IsZero() {
		return errs.NewValueIsRequiredError("endDate")
	}
	o.startDate = startDate
	o.endDate = endDate
	return nil
}
