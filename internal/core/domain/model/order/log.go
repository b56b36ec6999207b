package order

import (
	"errors"
	"fmt"
	"time"

	"rentalorders/internal/pkg/errs"
)

var (
	// ErrOrderLogIsNotConstructed is returned when an OrderLog instance was not
	// created through NewOrderLog or RestoreOrderLog.
	ErrOrderLogIsNotConstructed = errors.New("OrderLog must be created via NewOrderLog constructor")
)

// OrderLog is a single record in an order's append-only audit trail. One
// record is written for every status transition, including the creation
// record (pending -> pending). Records are never updated or removed.
//
// The record does not re-check transition legality: it captures the from/to
// pair exactly as the transition happened, with the timestamp equal to the
// order's updatedAt at that moment.
type OrderLog struct {
	// id is the store-assigned identifier (zero before the first save)
	id int64

	// orderID is the order this record belongs to
	orderID int64

	// fromStatus and toStatus capture the transition
	fromStatus Status
	toStatus   Status

	// timestamp is the moment of the transition (UTC)
	timestamp time.Time

	// isConstructed ensures the record was created via a constructor
	isConstructed bool
}

// NewOrderLog creates an audit record for a status transition of the given
// order. The orderID must be a store-assigned (positive) identifier and both
// statuses must be valid.
func NewOrderLog(orderID int64, fromStatus Status, toStatus Status, timestamp time.Time) (*OrderLog, error) {
	log := &OrderLog{
		isConstructed: true,
	}

	if err := errors.Join(
		log.setOrderID(orderID),
		log.setTransition(fromStatus, toStatus),
		log.setTimestamp(timestamp),
	); err != nil {
		return nil, err
	}

	return log, nil
}

// RestoreOrderLog reconstructs an OrderLog from persisted state.
func RestoreOrderLog(id int64, orderID int64, fromStatus Status, toStatus Status, timestamp time.Time) *OrderLog {
	return &OrderLog{
		id:            id,
		orderID:       orderID,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		timestamp:     timestamp,
		isConstructed: true,
	}
}

// Validate ensures the OrderLog instance was properly constructed.
func (l *OrderLog) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrOrderLogIsNotConstructed
	}

	return nil
}

// IsEqual compares two records by their store-assigned identifiers.
func (l *OrderLog) IsEqual(other *OrderLog) bool {
	return other != nil && l.id == other.id
}

// ID returns the store-assigned identifier (zero before the first save).
func (l *OrderLog) ID() int64 {
	return l.id
}

// OrderID returns the identifier of the order this record belongs to.
func (l *OrderLog) OrderID() int64 {
	return l.orderID
}

// FromStatus returns the status the order transitioned out of.
func (l *OrderLog) FromStatus() Status {
	return l.fromStatus
}

// ToStatus returns the status the order transitioned into.
func (l *OrderLog) ToStatus() Status {
	return l.toStatus
}

// Timestamp returns the moment of the transition (UTC).
func (l *OrderLog) Timestamp() time.Time {
	return l.timestamp
}

// setOrderID validates and sets the owning order's identifier.
// This is a private method used only during construction.
func (l *OrderLog) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId is invalid", fmt.Errorf("%d is not greater than 0", orderID))
	}
	l.orderID = orderID
	return nil
}

// setTransition validates and sets the from/to status pair.
// This is a private method used only during construction.
func (l *OrderLog) setTransition(fromStatus Status, toStatus Status) error {
	if err := fromStatus.Validate(); err != nil {
		return err
	}
	if err := toStatus.Validate(); err != nil {
		return err
	}
	l.fromStatus = fromStatus
	l.toStatus = toStatus
	return nil
}

// setTimestamp validates and sets the transition timestamp.
// This is a private method used only during construction.
func (l *OrderLog) setTimestamp(timestamp time.Time) error {
	if timestamp.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	l.timestamp = timestamp
	return nil
}
