package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"rentalorders/internal/core/application/usecases/commands"
	"rentalorders/internal/core/application/usecases/queries"
	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"
	"rentalorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP surface of the order lifecycle.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	confirmOrderHandler      commands.ConfirmOrderCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	listOrdersHandler   queries.ListOrdersQueryHandler
	getOrderLogsHandler queries.GetOrderLogsQueryHandler
	getJobHandler       queries.GetJobQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderLogsHandler queries.GetOrderLogsQueryHandler,
	getJobHandler queries.GetJobQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		confirmOrderHandler:      confirmOrderHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
		getOrderLogsHandler:      getOrderLogsHandler,
		getJobHandler:            getJobHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/", s.Root)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.ListOrders)
	e.GET("/orders/:orderId", s.GetOrder)
	e.DELETE("/orders/:orderId", s.CancelOrder)
	e.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
	e.GET("/orders/:orderId/logs", s.GetOrderLogs)
	e.POST("/orders/:orderId/confirm", s.ConfirmOrder)

	e.GET("/jobs/:jobId", s.GetJob)
}

// Root handles GET / - service banner.
func (s *Server) Root(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Order & Rental Service API"})
}

// CreateOrder handles POST /orders - places a new rental order.
//
//	@Summary		Create order
//	@Description	Creates a rental order in pending status and records the initial audit entry
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		CreateOrderRequest	true	"Order to create"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	MessageResponse
//	@Router			/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid request body"})
	}
	if err := ctx.Validate(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
	}

	cmd, err := commands.NewCreateOrderCommand(req.UserID, req.ItemID, req.StartDate.Time, req.EndDate.Time)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/orders/%d", created.ID()))

	return ctx.JSON(http.StatusCreated, orderResponseFromAggregate(created))
}

// ListOrders handles GET /orders - lists orders with optional filters.
//
//	@Summary		List orders
//	@Description	Lists orders, optionally filtered by status, user, item and creation window
//	@Tags			orders
//	@Produce		json
//	@Param			state	query		string	false	"Order status"	Enums(pending, active, returned, cancelled)
//	@Param			userId	query		int		false	"User identifier"
//	@Param			itemId	query		int		false	"Item identifier"
//	@Param			from	query		string	false	"Created at or after (RFC 3339)"
//	@Param			to		query		string	false	"Created before (RFC 3339)"
//	@Success		200		{array}		OrderResponse
//	@Failure		400		{object}	MessageResponse
//	@Router			/orders [get]
func (s *Server) ListOrders(ctx echo.Context) error {
	filter, err := orderFilterFromRequest(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return errorResponse(ctx, err)
	}

	results, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderResponse, len(results))
	for i, result := range results {
		response[i] = orderResponseFromQuery(result)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /orders/{orderId} - retrieves one order.
//
//	@Summary		Get order
//	@Tags			orders
//	@Produce		json
//	@Param			orderId	path		int	true	"Order identifier"
//	@Success		200		{object}	OrderResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/orders/{orderId} [get]
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromQuery(result))
}

// CancelOrder handles DELETE /orders/{orderId} - cancels a pending order.
//
//	@Summary		Cancel order
//	@Description	Moves the order to cancelled status and records the transition
//	@Tags			orders
//	@Produce		json
//	@Param			orderId	path		int	true	"Order identifier"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	MessageResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/orders/{orderId} [delete]
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if _, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Order cancelled successfully"})
}

// UpdateOrderStatus handles PATCH /orders/{orderId}/status - administrative status override.
//
//	@Summary		Update order status
//	@Description	Sets the order status directly, bypassing lifecycle transition rules
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			orderId	path		int							true	"Order identifier"
//	@Param			status	body		UpdateOrderStatusRequest	true	"Target status"
//	@Success		200		{object}	OrderResponse
//	@Failure		400		{object}	MessageResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/orders/{orderId}/status [patch]
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid request body"})
	}
	if err := ctx.Validate(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// GetOrderLogs handles GET /orders/{orderId}/logs - retrieves the order's audit trail.
//
//	@Summary		Get order logs
//	@Description	Returns the append-only status transition history, oldest first
//	@Tags			orders
//	@Produce		json
//	@Param			orderId	path		int	true	"Order identifier"
//	@Success		200		{array}		OrderLogResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/orders/{orderId}/logs [get]
func (s *Server) GetOrderLogs(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderLogsQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	results, err := s.getOrderLogsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderLogResponse, len(results))
	for i, result := range results {
		response[i] = orderLogResponseFromQuery(result)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConfirmOrder handles POST /orders/{orderId}/confirm - starts asynchronous confirmation.
//
//	@Summary		Confirm order
//	@Description	Enqueues a confirmation job for a pending order and returns a polling location
//	@Tags			orders
//	@Produce		json
//	@Param			orderId	path		int	true	"Order identifier"
//	@Success		202		{object}	ConfirmOrderResponse
//	@Failure		400		{object}	MessageResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/orders/{orderId}/confirm [post]
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/jobs/%s", created.ID()))

	return ctx.JSON(http.StatusAccepted, ConfirmOrderResponse{
		JobID:  created.ID().String(),
		Status: created.Status().String(),
	})
}

// GetJob handles GET /jobs/{jobId} - polls a confirmation job.
// An in-progress job answers 202 with a Location header pointing back at
// itself; a terminal job answers 200 with the result populated.
//
//	@Summary		Get job
//	@Tags			jobs
//	@Produce		json
//	@Param			jobId	path		string	true	"Job identifier"
//	@Success		200		{object}	JobResponse
//	@Success		202		{object}	JobResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/jobs/{jobId} [get]
func (s *Server) GetJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("jobId"))
	if err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("jobId", err))
	}

	query, err := queries.NewGetJobQuery(jobID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getJobHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if !result.Completed {
		ctx.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/jobs/%s", result.JobID))
		return ctx.JSON(http.StatusAccepted, jobResponseFromQuery(result))
	}

	return ctx.JSON(http.StatusOK, jobResponseFromQuery(result))
}

func orderIDFromPath(ctx echo.Context) (int64, error) {
	raw := ctx.Param("orderId")

	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	return orderID, nil
}

// orderFilterFromRequest parses the optional list filters from query params.
func orderFilterFromRequest(ctx echo.Context) (ports.OrderFilter, error) {
	var filter ports.OrderFilter

	if raw := ctx.QueryParam("state"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return ports.OrderFilter{}, err
		}
		filter.Status = &status
	}

	if raw := ctx.QueryParam("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ports.OrderFilter{}, errs.NewValueIsInvalidErrorWithCause("userId", err)
		}
		filter.UserID = &userID
	}

	if raw := ctx.QueryParam("itemId"); raw != "" {
		itemID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ports.OrderFilter{}, errs.NewValueIsInvalidErrorWithCause("itemId", err)
		}
		filter.ItemID = &itemID
	}

	if raw := ctx.QueryParam("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ports.OrderFilter{}, errs.NewValueIsInvalidErrorWithCause("from", err)
		}
		filter.CreatedFrom = &from
	}

	if raw := ctx.QueryParam("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ports.OrderFilter{}, errs.NewValueIsInvalidErrorWithCause("to", err)
		}
		filter.CreatedTo = &to
	}

	return filter, nil
}
