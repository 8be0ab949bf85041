// Package http exposes the application use cases over an HTTP API built on
// echo. Handlers translate JSON payloads into commands and queries; all
// business rules live behind those.
package http

import (
	"errors"
	"net/http"

	"coffeeshop/internal/core/application/usecases/commands"
	"coffeeshop/internal/core/application/usecases/queries"
	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP routes to the command and query handlers.
type Server struct {
	// Command handlers
	placeOrderHandler           commands.PlaceOrderCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	createDeliveryBatchHandler  commands.CreateDeliveryBatchCommandHandler
	autoBatchOrdersHandler      commands.AutoBatchOrdersCommandHandler
	assignRiderHandler          commands.AssignRiderCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler

	// Query handlers
	getOrderHandler             queries.GetOrderQueryHandler
	getAllOrdersHandler         queries.GetAllOrdersQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getDeliveryHandler          queries.GetDeliveryQueryHandler
	getActiveDeliveriesHandler  queries.GetActiveDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	createDeliveryBatchHandler commands.CreateDeliveryBatchCommandHandler,
	autoBatchOrdersHandler commands.AutoBatchOrdersCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:           placeOrderHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		createDeliveryBatchHandler:  createDeliveryBatchHandler,
		autoBatchOrdersHandler:      autoBatchOrdersHandler,
		assignRiderHandler:          assignRiderHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		getOrderHandler:             getOrderHandler,
		getAllOrdersHandler:         getAllOrdersHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		getDeliveryHandler:          getDeliveryHandler,
		getActiveDeliveriesHandler:  getActiveDeliveriesHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)

	api.POST("/deliveries/batch", s.CreateDeliveryBatch)
	api.POST("/deliveries/auto-batch", s.AutoBatchOrders)
	api.GET("/deliveries/active", s.GetActiveDeliveries)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.PUT("/deliveries/:id/rider", s.AssignRider)
	api.PUT("/deliveries/:id/status", s.UpdateDeliveryStatus)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type itemRequest struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type addressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type placeOrderRequest struct {
	CustomerName string          `json:"customerName"`
	OrderType    string          `json:"orderType"`
	Items        []itemRequest   `json:"items"`
	Address      *addressRequest `json:"address,omitempty"`
}

type placeOrderResponse struct {
	OrderID string `json:"orderId"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderType, err := order.TypeFromString(req.OrderType)
	if err != nil {
		return badRequest(ctx, "Invalid order type: "+req.OrderType)
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	var address *commands.AddressInput
	if req.Address != nil {
		address = &commands.AddressInput{
			Street:     req.Address.Street,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, req.CustomerName, orderType, items, address)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to place order")
	}

	return ctx.JSON(http.StatusCreated, placeOrderResponse{OrderID: orderID.String()})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid order status: "+req.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	if err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to update order status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createBatchRequest struct {
	OrderIDs []string `json:"orderIds"`
}

type createBatchResponse struct {
	DeliveryID string `json:"deliveryId"`
}

// CreateDeliveryBatch handles POST /api/v1/deliveries/batch.
func (s *Server) CreateDeliveryBatch(ctx echo.Context) error {
	var req createBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewCreateDeliveryBatchCommand(orderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid batch request: "+err.Error())
	}

	deliveryID, err := s.createDeliveryBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to create delivery batch")
	}

	return ctx.JSON(http.StatusCreated, createBatchResponse{DeliveryID: deliveryID.String()})
}

type autoBatchResponse struct {
	DeliveryIDs []string `json:"deliveryIds"`
}

// AutoBatchOrders handles POST /api/v1/deliveries/auto-batch.
func (s *Server) AutoBatchOrders(ctx echo.Context) error {
	cmd := commands.NewAutoBatchOrdersCommand()

	ids, err := s.autoBatchOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "Failed to auto-batch orders")
	}

	resp := autoBatchResponse{DeliveryIDs: make([]string, 0, len(ids))}
	for _, id := range ids {
		resp.DeliveryIDs = append(resp.DeliveryIDs, id.String())
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	query := queries.NewGetActiveDeliveriesQuery()

	deliveries, err := s.getActiveDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve deliveries")
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve delivery")
	}

	return ctx.JSON(http.StatusOK, resp)
}

type assignRiderRequest struct {
	RiderID     string `json:"riderId"`
	RiderName   string `json:"riderName"`
	PhoneNumber string `json:"phoneNumber"`
	VehicleType string `json:"vehicleType,omitempty"`
}

// AssignRider handles PUT /api/v1/deliveries/:id/rider.
func (s *Server) AssignRider(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req assignRiderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignRiderCommand(
		deliveryID, req.RiderID, req.RiderName, req.PhoneNumber, req.VehicleType)
	if err != nil {
		return badRequest(ctx, "Invalid rider data: "+err.Error())
	}

	if err := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to assign rider")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryStatus handles PUT /api/v1/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid delivery status: "+req.Status)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, target)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	if err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to update delivery status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// domainError maps the error taxonomy onto HTTP status codes: not found to
// 404, validation to 400, transition conflicts to 409, everything else 500.
func domainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidStateTransition):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return internalError(ctx, fallback)
	}
}
