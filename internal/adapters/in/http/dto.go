package http

import (
	"time"

	"shelf2door/internal/core/application/tracking"
	"shelf2door/internal/core/domain/model/agent"
	"shelf2door/internal/core/domain/model/shelf"
	"shelf2door/internal/core/geo"

	"github.com/shopspring/decimal"
)

// Error is the uniform error body returned by every handler.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	CustomerID string           `json:"customer_id"`
	Items      []NewItemRequest `json:"items"`
	Address    string           `json:"address,omitempty"`
}

// NewItemRequest is one line item in an order request.
type NewItemRequest struct {
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// NewOrderResponse is the body returned on successful order creation.
type NewOrderResponse struct {
	OrderID string `json:"order_id"`
}

// UpdateStatusRequest is the body of POST /api/v1/orders/:id/status.
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// UpdateStatusResponse reports whether the transition was applied.
type UpdateStatusResponse struct {
	Updated bool `json:"updated"`
}

// OrderResponse is the full order view returned by GET /api/v1/orders/:id.
type OrderResponse struct {
	OrderID           string           `json:"order_id"`
	CustomerID        string           `json:"customer_id"`
	Status            string           `json:"status"`
	Items             []ItemResponse   `json:"items"`
	Total             string           `json:"total"`
	Address           string           `json:"address"`
	Destination       PointResponse    `json:"destination"`
	CreatedAt         time.Time        `json:"created_at"`
	EstimatedDelivery time.Time        `json:"estimated_delivery"`
	ActualDelivery    *time.Time       `json:"actual_delivery,omitempty"`
	AgentID           *string          `json:"agent_id,omitempty"`
	AgentPosition     *PointResponse   `json:"agent_position,omitempty"`
	ETAMinutes        *int             `json:"eta_minutes,omitempty"`
	TrackingLog       []UpdateResponse `json:"tracking_log"`
}

// ItemResponse is one line item in an order view.
type ItemResponse struct {
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

// PointResponse is a latitude/longitude pair.
type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateResponse is one entry of an order's tracking log.
type UpdateResponse struct {
	At      time.Time         `json:"at"`
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// AgentResponse is one delivery agent in the fleet view.
type AgentResponse struct {
	AgentID        string         `json:"agent_id"`
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Vehicle        string         `json:"vehicle"`
	Availability   string         `json:"availability"`
	AssignedOrders []string       `json:"assigned_orders"`
	Position       *PointResponse `json:"position,omitempty"`
}

// StockReportRequest is the body of POST /api/v1/shelves/:id/stock.
type StockReportRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// StockReportResponse is one shelf in the stock view.
type StockReportResponse struct {
	ShelfID     string    `json:"shelf_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	ReportedAt  time.Time `json:"reported_at"`
}

func orderResponseOf(snapshot tracking.Snapshot) OrderResponse {
	items := make([]ItemResponse, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, ItemResponse{
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().StringFixed(2),
			Quantity:    item.Quantity(),
			Subtotal:    item.Subtotal().StringFixed(2),
		})
	}

	log := make([]UpdateResponse, 0, len(snapshot.TrackingLog))
	for _, entry := range snapshot.TrackingLog {
		log = append(log, UpdateResponse{
			At:      entry.At(),
			Status:  entry.Status().String(),
			Message: entry.Message(),
			Details: entry.Details(),
		})
	}

	response := OrderResponse{
		OrderID:    snapshot.ID.String(),
		CustomerID: snapshot.CustomerID.String(),
		Status:     snapshot.Status.String(),
		Items:      items,
		Total:      snapshot.Total.StringFixed(2),
		Address:    snapshot.Address,
		Destination: PointResponse{
			Lat: snapshot.Destination.Lat(),
			Lng: snapshot.Destination.Lng(),
		},
		CreatedAt:         snapshot.CreatedAt,
		EstimatedDelivery: snapshot.EstimatedDelivery,
		ActualDelivery:    snapshot.ActualDelivery,
		ETAMinutes:        snapshot.ETAMinutes,
		TrackingLog:       log,
	}

	if snapshot.AgentID != nil {
		id := snapshot.AgentID.String()
		response.AgentID = &id
	}
	if snapshot.AgentPosition != nil {
		response.AgentPosition = &PointResponse{
			Lat: snapshot.AgentPosition.Point.Lat(),
			Lng: snapshot.AgentPosition.Point.Lng(),
		}
	}

	return response
}

func agentResponseOf(snapshot agent.Snapshot, position *geo.Sample) AgentResponse {
	assigned := make([]string, 0, len(snapshot.AssignedOrders))
	for _, orderID := range snapshot.AssignedOrders {
		assigned = append(assigned, orderID.String())
	}

	response := AgentResponse{
		AgentID:        snapshot.ID.String(),
		Name:           snapshot.Name,
		Phone:          snapshot.Phone,
		Vehicle:        snapshot.Vehicle,
		Availability:   snapshot.Availability.String(),
		AssignedOrders: assigned,
	}
	if position != nil {
		response.Position = &PointResponse{
			Lat: position.Point.Lat(),
			Lng: position.Point.Lng(),
		}
	}

	return response
}

func stockResponseOf(report shelf.StockReport) StockReportResponse {
	return StockReportResponse{
		ShelfID:     report.ShelfID,
		ProductName: report.ProductName,
		Quantity:    report.Quantity,
		ReportedAt:  report.ReportedAt,
	}
}
