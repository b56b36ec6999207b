package queries

import (
	"errors"

	"rentalorders/internal/core/ports"
	"rentalorders/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery retrieves orders matching a set of optional, conjunctive
// filters: status, user, item, and an inclusive createdAt range. An empty
// filter returns every order.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	filter ports.OrderFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query with the given filter.
// A set status filter must hold a valid status value.
func NewListOrdersQuery(filter ports.OrderFilter) (ListOrdersQuery, error) {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Filter returns the filter to apply.
func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}
