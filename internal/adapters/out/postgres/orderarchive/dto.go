// Package orderarchive persists order snapshots to PostgreSQL for audit and
// reporting. The archive is write-behind: the in-memory store stays the source
// of truth and snapshots are upserted here after each state change.
package orderarchive

import (
	"encoding/json"
	"fmt"
	"time"

	"shelf2door/internal/core/application/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderArchiveDTO represents the database row for one archived order snapshot.
// The row is keyed by order ID and overwritten on every state change, so the
// table always holds the latest known state of each order.
type OrderArchiveDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;index"`
	AgentID           *uuid.UUID `gorm:"type:uuid;index"`
	Status            string     `gorm:"index"`
	Address           string
	DestinationLat    float64
	DestinationLng    float64
	Total             decimal.Decimal `gorm:"type:numeric(12,2)"`
	Items             string          `gorm:"type:jsonb"`
	TrackingLog       string          `gorm:"type:jsonb"`
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
	ArchivedAt        time.Time
}

// TableName specifies the database table name for archived order snapshots.
func (OrderArchiveDTO) TableName() string {
	return "order_archive"
}

// itemDTO is the JSON shape of one line item inside the items column.
type itemDTO struct {
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// trackingEntryDTO is the JSON shape of one tracking log entry.
type trackingEntryDTO struct {
	At      time.Time         `json:"at"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// fromSnapshot converts an order snapshot to its database representation.
// Line items and the tracking log are serialized into jsonb columns.
func fromSnapshot(snapshot tracking.Snapshot, archivedAt time.Time) (OrderArchiveDTO, error) {
	var agentID *uuid.UUID
	if snapshot.AgentID != nil {
		raw := snapshot.AgentID.Bytes()
		agentID = &raw
	}

	items := make([]itemDTO, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, itemDTO{
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().String(),
			Quantity:    item.Quantity(),
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderArchiveDTO{}, fmt.Errorf("marshal items: %w", err)
	}

	log := make([]trackingEntryDTO, 0, len(snapshot.TrackingLog))
	for _, entry := range snapshot.TrackingLog {
		log = append(log, trackingEntryDTO{
			At:      entry.At(),
			Status:  entry.Status().String(),
			Message: entry.Message(),
			Details: entry.Details(),
		})
	}
	logJSON, err := json.Marshal(log)
	if err != nil {
		return OrderArchiveDTO{}, fmt.Errorf("marshal tracking log: %w", err)
	}

	return OrderArchiveDTO{
		ID:                snapshot.ID.Bytes(),
		CustomerID:        snapshot.CustomerID.Bytes(),
		AgentID:           agentID,
		Status:            snapshot.Status.String(),
		Address:           snapshot.Address,
		DestinationLat:    snapshot.Destination.Lat(),
		DestinationLng:    snapshot.Destination.Lng(),
		Total:             snapshot.Total,
		Items:             string(itemsJSON),
		TrackingLog:       string(logJSON),
		CreatedAt:         snapshot.CreatedAt,
		EstimatedDelivery: snapshot.EstimatedDelivery,
		ActualDelivery:    snapshot.ActualDelivery,
		ArchivedAt:        archivedAt,
	}, nil
}
