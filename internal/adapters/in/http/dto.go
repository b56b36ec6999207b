package http

import (
	"fmt"
	"time"

	"rentalorders/internal/core/application/usecases/queries"
	"rentalorders/internal/core/domain/model/order"

	"github.com/oapi-codegen/runtime/types"
)

// CreateOrderRequest is the body of POST /orders.
// Dates use the YYYY-MM-DD wire format.
type CreateOrderRequest struct {
	UserID    int64      `json:"user_id" validate:"required,gt=0"`
	ItemID    int64      `json:"item_id" validate:"required,gt=0"`
	StartDate types.Date `json:"start_date" validate:"required"`
	EndDate   types.Date `json:"end_date" validate:"required"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/{orderId}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderLinks is the HATEOAS-style link block of an order representation.
// Links are derived from the order's identifiers at serialization time and
// never persisted.
type OrderLinks struct {
	Self string `json:"self"`
	User string `json:"user"`
	Item string `json:"item"`
}

func newOrderLinks(orderID int64, userID int64, itemID int64) OrderLinks {
	return OrderLinks{
		Self: fmt.Sprintf("/orders/%d", orderID),
		User: fmt.Sprintf("/users/%d", userID),
		Item: fmt.Sprintf("/items/%d", itemID),
	}
}

// OrderResponse is the JSON representation of one order.
type OrderResponse struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	ItemID    int64      `json:"item_id"`
	StartDate types.Date `json:"start_date"`
	EndDate   types.Date `json:"end_date"`
	TotalRent float64    `json:"total_rent"`
	Deposit   float64    `json:"deposit"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Links     OrderLinks `json:"links"`
}

// orderResponseFromQuery maps a query result to the wire representation.
func orderResponseFromQuery(result queries.OrderResponse) OrderResponse {
	return OrderResponse{
		ID:        result.ID,
		UserID:    result.UserID,
		ItemID:    result.ItemID,
		StartDate: types.Date{Time: result.StartDate},
		EndDate:   types.Date{Time: result.EndDate},
		TotalRent: result.TotalRent,
		Deposit:   result.Deposit,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
		Links:     newOrderLinks(result.ID, result.UserID, result.ItemID),
	}
}

// orderResponseFromAggregate maps a freshly written aggregate to the wire
// representation, sparing command routes a read-back query.
func orderResponseFromAggregate(aggregate *order.Order) OrderResponse {
	return OrderResponse{
		ID:        aggregate.ID(),
		UserID:    aggregate.UserID(),
		ItemID:    aggregate.ItemID(),
		StartDate: types.Date{Time: aggregate.StartDate()},
		EndDate:   types.Date{Time: aggregate.EndDate()},
		TotalRent: aggregate.TotalRent(),
		Deposit:   aggregate.Deposit(),
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Links:     newOrderLinks(aggregate.ID(), aggregate.UserID(), aggregate.ItemID()),
	}
}

// OrderLogResponse is the JSON representation of one audit record.
type OrderLogResponse struct {
	LogID      int64     `json:"log_id"`
	OrderID    int64     `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Timestamp  time.Time `json:"timestamp"`
}

func orderLogResponseFromQuery(result queries.OrderLogResponse) OrderLogResponse {
	return OrderLogResponse{
		LogID:      result.LogID,
		OrderID:    result.OrderID,
		FromStatus: result.FromStatus,
		ToStatus:   result.ToStatus,
		Timestamp:  result.Timestamp,
	}
}

// JobResponse is the JSON representation of one confirmation job.
// Result stays null until the job reaches a terminal state.
type JobResponse struct {
	JobID   string  `json:"job_id"`
	OrderID int64   `json:"order_id"`
	Status  string  `json:"status"`
	Result  *string `json:"result"`
}

func jobResponseFromQuery(result queries.JobResponse) JobResponse {
	return JobResponse{
		JobID:   result.JobID,
		OrderID: result.OrderID,
		Status:  result.Status,
		Result:  result.Result,
	}
}

// ConfirmOrderResponse is the body of a 202 Accepted confirmation request.
type ConfirmOrderResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// MessageResponse carries informational and error messages.
type MessageResponse struct {
	Message string `json:"message"`
}
