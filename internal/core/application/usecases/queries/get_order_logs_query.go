package queries

import (
	"errors"
	"fmt"

	"rentalorders/internal/pkg/errs"
	"rentalorders/internal/pkg/guard"
)

var (
	ErrGetOrderLogsQueryIsNotConstructed = errors.New(
		"GetOrderLogsQuery must be created via NewGetOrderLogsQuery constructor",
	)
)

// GetOrderLogsQuery retrieves the audit trail of one order, ordered by
// (timestamp, logId). The order itself must exist.
type GetOrderLogsQuery struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderLogsQuery creates a query for the given order's audit trail.
// Validates that the order id is positive.
func NewGetOrderLogsQuery(orderID int64) (GetOrderLogsQuery, error) {
	query := GetOrderLogsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderLogsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderLogsQueryIsNotConstructed if validation fails.
func (q GetOrderLogsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderLogsQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose trail is requested.
func (q GetOrderLogsQuery) OrderID() int64 {
	return q.orderID
}

func (q *GetOrderLogsQuery) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId is invalid", fmt.Errorf("%d is not greater than 0", orderID))
	}

	q.orderID = orderID
	return nil
}
