// Package logrepo provides data transfer objects and mapping functions for
// the append-only order audit trail. Records are written once per committed
// status transition and never updated or removed.
package logrepo

import (
	"time"

	"rentalorders/internal/core/domain/model/order"
)

// OrderLogDTO represents the database structure for one audit record.
type OrderLogDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	OrderID    int64 `gorm:"index"`
	FromStatus int
	ToStatus   int
	Timestamp  time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit records.
func (OrderLogDTO) TableName() string {
	return "order_logs"
}

// fromDomain converts an audit record to its database representation.
func fromDomain(record *order.OrderLog) OrderLogDTO {
	return OrderLogDTO{
		ID:         record.ID(),
		OrderID:    record.OrderID(),
		FromStatus: int(record.FromStatus()),
		ToStatus:   int(record.ToStatus()),
		Timestamp:  record.Timestamp(),
	}
}

// toDomain converts a database DTO to an audit record using RestoreOrderLog.
func toDomain(dto OrderLogDTO) *order.OrderLog {
	return order.RestoreOrderLog(
		dto.ID,
		dto.OrderID,
		order.Status(dto.FromStatus),
		order.Status(dto.ToStatus),
		dto.Timestamp,
	)
}
