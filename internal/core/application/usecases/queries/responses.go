// Package queries contains read-only operations of the CQRS architecture.
// Query handlers read through the repository ports, so both storage adapters
// (postgres and in-memory) serve the same handlers unchanged.
package queries

import (
	"time"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/order"
)

// OrderResponse represents one order in query results.
// Statuses are reported in their lowercase wire form.
type OrderResponse struct {
	ID        int64
	UserID    int64
	ItemID    int64
	StartDate time.Time
	EndDate   time.Time
	TotalRent float64
	Deposit   float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// newOrderResponse maps an order aggregate to its query representation.
func newOrderResponse(aggregate *order.Order) OrderResponse {
	return OrderResponse{
		ID:        aggregate.ID(),
		UserID:    aggregate.UserID(),
		ItemID:    aggregate.ItemID(),
		StartDate: aggregate.StartDate(),
		EndDate:   aggregate.EndDate(),
		TotalRent: aggregate.TotalRent(),
		Deposit:   aggregate.Deposit(),
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// OrderLogResponse represents one audit record in query results.
type OrderLogResponse struct {
	LogID      int64
	OrderID    int64
	FromStatus string
	ToStatus   string
	Timestamp  time.Time
}

// newOrderLogResponse maps an audit record to its query representation.
func newOrderLogResponse(record *order.OrderLog) OrderLogResponse {
	return OrderLogResponse{
		LogID:      record.ID(),
		OrderID:    record.OrderID(),
		FromStatus: record.FromStatus().String(),
		ToStatus:   record.ToStatus().String(),
		Timestamp:  record.Timestamp(),
	}
}

// JobResponse represents one confirmation job in query results.
// Completed mirrors the terminal check so the polling surface does not have
// to re-parse the status string.
type JobResponse struct {
	JobID     string
	OrderID   int64
	Status    string
	Result    *string
	Completed bool
}

// newJobResponse maps a job aggregate to its query representation.
func newJobResponse(aggregate *job.Job) JobResponse {
	return JobResponse{
		JobID:     aggregate.ID().String(),
		OrderID:   aggregate.OrderID(),
		Status:    aggregate.Status().String(),
		Result:    aggregate.Result(),
		Completed: aggregate.IsTerminal(),
	}
}
