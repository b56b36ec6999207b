// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"rentalorders/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Timestamps are owned by the domain, so GORM's automatic time tracking is
// disabled; the status column is what the conditional transition guards on.
type OrderDTO struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"index"`
	ItemID    int64 `gorm:"index"`
	StartDate time.Time
	EndDate   time.Time
	TotalRent float64
	Deposit   float64
	Status    int       `gorm:"index"`
	CreatedAt time.Time `gorm:"index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:        aggregate.ID(),
		UserID:    aggregate.UserID(),
		ItemID:    aggregate.ItemID(),
		StartDate: aggregate.StartDate(),
		EndDate:   aggregate.EndDate(),
		TotalRent: aggregate.TotalRent(),
		Deposit:   aggregate.Deposit(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
// The restored aggregate remembers its stored status for conditional updates.
func toDomain(dto OrderDTO) *order.Order {
	return order.RestoreOrder(
		dto.ID,
		dto.UserID,
		dto.ItemID,
		dto.StartDate,
		dto.EndDate,
		dto.TotalRent,
		dto.Deposit,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
