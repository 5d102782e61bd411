// Package http exposes the order lifecycle over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"shelf2door/internal/core/application/tracking"
	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/core/domain/model/order"
	"shelf2door/internal/core/domain/model/shelf"
	"shelf2door/internal/core/geo"
	"shelf2door/internal/core/ports"
	"shelf2door/internal/core/registry"
	"shelf2door/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests, coordinating between handlers and the
// application core.
type Server struct {
	store   *tracking.Store
	agents  *registry.AgentRegistry
	geo     *geo.Service
	shelves ports.ShelfStockRepository
}

// NewServer creates a new HTTP server. shelves may be nil, which disables the
// shelf stock endpoints.
func NewServer(
	store *tracking.Store,
	agents *registry.AgentRegistry,
	geoService *geo.Service,
	shelves ports.ShelfStockRepository,
) *Server {
	return &Server{
		store:   store,
		agents:  agents,
		geo:     geoService,
		shelves: shelves,
	}
}

// RegisterRoutes attaches all handlers to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.GET("/agents", s.GetAgents)

	if s.shelves != nil {
		api.POST("/shelves/:id/stock", s.ReportShelfStock)
		api.GET("/shelves", s.GetShelves)
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid customer id",
		})
	}

	items := make([]order.LineItem, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		item, itemErr := order.NewLineItem(
			itemRequest.ProductName, itemRequest.UnitPrice, itemRequest.Quantity)
		if itemErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid order item: " + itemErr.Error(),
			})
		}
		items = append(items, item)
	}

	orderID, err := s.store.CreateOrder(ctx.Request().Context(), customerID, items, request.Address)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Customer not found",
			})
		}
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	return ctx.JSON(http.StatusCreated, NewOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - returns the order with live
// tracking data.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	snapshot, ok := s.store.GetStatus(orderID)
	if !ok {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	return ctx.JSON(http.StatusOK, orderResponseOf(snapshot))
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status - applies a
// state-machine transition.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var request UpdateStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	next, err := order.ParseStatus(request.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + request.Status,
		})
	}

	if !s.store.UpdateStatus(ctx.Request().Context(), orderID, next, request.Message) {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Transition not allowed",
		})
	}

	return ctx.JSON(http.StatusOK, UpdateStatusResponse{Updated: true})
}

// GetAgents handles GET /api/v1/agents - returns the fleet with last known
// positions.
func (s *Server) GetAgents(ctx echo.Context) error {
	snapshots := s.agents.All()

	response := make([]AgentResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		var position *geo.Sample
		if sample, err := s.geo.Position(snapshot.ID); err == nil {
			position = &sample
		}
		response = append(response, agentResponseOf(snapshot, position))
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReportShelfStock handles POST /api/v1/shelves/:id/stock - records a sensor
// reading for one shelf.
func (s *Server) ReportShelfStock(ctx echo.Context) error {
	var request StockReportRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	report := shelf.StockReport{
		ShelfID:     ctx.Param("id"),
		ProductName: request.ProductName,
		Quantity:    request.Quantity,
		ReportedAt:  time.Now(),
	}
	if err := report.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid stock report: " + err.Error(),
		})
	}

	if err := s.shelves.Upsert(ctx.Request().Context(), report); err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to store stock report",
		})
	}

	return ctx.JSON(http.StatusOK, stockResponseOf(report))
}

// GetShelves handles GET /api/v1/shelves - returns the latest report of every
// shelf.
func (s *Server) GetShelves(ctx echo.Context) error {
	reports, err := s.shelves.All(ctx.Request().Context())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve stock reports",
		})
	}

	response := make([]StockReportResponse, 0, len(reports))
	for _, report := range reports {
		response = append(response, stockResponseOf(report))
	}

	return ctx.JSON(http.StatusOK, response)
}
