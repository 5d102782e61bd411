package tracking

import (
	"time"

	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/core/domain/model/order"
	"shelf2door/internal/core/geo"

	"github.com/shopspring/decimal"
)

// Snapshot is a deep, read-only copy of an order's state as returned by
// Store.GetStatus. AgentPosition and ETAMinutes are filled only when an agent
// is assigned and has a recorded position.
type Snapshot struct {
	ID                kernel.UUID
	CustomerID        kernel.UUID
	Items             []order.LineItem
	Total             decimal.Decimal
	Address           string
	Destination       kernel.GeoPoint
	Status            order.Status
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
	AgentID           *kernel.UUID
	AgentPosition     *geo.Sample
	ETAMinutes        *int
	TrackingLog       []order.TrackingUpdate
}

// snapshotOf copies the aggregate's state. Callers must hold the store lock.
func snapshotOf(o *order.Order) Snapshot {
	return Snapshot{
		ID:                o.ID(),
		CustomerID:        o.CustomerID(),
		Items:             o.Items(),
		Total:             o.Total(),
		Address:           o.Address(),
		Destination:       o.Destination(),
		Status:            o.Status(),
		CreatedAt:         o.CreatedAt(),
		EstimatedDelivery: o.EstimatedDelivery(),
		ActualDelivery:    o.ActualDelivery(),
		AgentID:           o.AgentID(),
		TrackingLog:       o.TrackingLog(),
	}
}
