package commands

import (
	"errors"
	"fmt"
	"time"

	"rentalorders/internal/pkg/errs"
	"rentalorders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to create a new rental order.
// Encapsulates the renting user, the rented item, and the rental period.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(12, 505, startDate, endDate)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %d created in %s status", created.ID(), created.Status())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID    int64
	itemID    int64
	startDate time.Time
	endDate   time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new rental order.
// Validates that user and item ids are positive and both period bounds are set.
// Returns an error if any validation fails.
func NewCreateOrderCommand(userID int64, itemID int64, startDate time.Time, endDate time.Time) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setUserID(userID),
		orderCommand.setItemID(itemID),
		orderCommand.setRentalPeriod(startDate, endDate),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the identifier of the renting user.
func (c CreateOrderCommand) UserID() int64 {
	return c.userID
}

// ItemID returns the identifier of the rented item.
func (c CreateOrderCommand) ItemID() int64 {
	return c.itemID
}

// StartDate returns the first day of the rental period.
func (c CreateOrderCommand) StartDate() time.Time {
	return c.startDate
}

// EndDate returns the last day of the rental period.
func (c CreateOrderCommand) EndDate() time.Time {
	return c.endDate
}

func (c *CreateOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("userId is invalid", fmt.Errorf("%d is not greater than 0", userID))
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setItemID(itemID int64) error {
	if itemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("itemId is invalid", fmt.Errorf("%d is not greater than 0", itemID))
	}

	c.itemID = itemID
	return nil
}

func (c *CreateOrderCommand) setRentalPeriod(startDate time.Time, endDate time.Time) error {
	if startDate.IsZero() {
		return errs.NewValueIsRequiredError("startDate")
	}
	if endDate.IsZero() {
		return errs.NewValueIsRequiredError("endDate")
	}

	c.startDate = startDate
	c.endDate = endDate
	return nil
}
