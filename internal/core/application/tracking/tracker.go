package tracking

import (
	"context"
	"fmt"
	"log/slog"

	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/core/domain/model/order"
	"shelf2door/internal/core/geo"
	"shelf2door/internal/pkg/sim"
)

// Simulation constants for the periodic tracking step.
const (
	// DispatchProbability is the per-tick chance that a preparing order
	// goes out for delivery.
	DispatchProbability = 0.1

	// MoveFraction is the share of the remaining vector an agent covers per
	// tick. The approach is exponential and never reaches the destination by
	// movement alone; the delivered threshold below closes the gap.
	MoveFraction = 0.1

	// DeliveredThresholdKm forces the transition to delivered.
	DeliveredThresholdKm = 0.1

	// NearbyThresholdKm triggers a "driver nearby" tracking update.
	NearbyThresholdKm = 0.5
)

// Tracker advances the delivery simulation by one step per Tick call:
// preparing orders probabilistically go out for delivery, and out-for-delivery
// orders move their agent closer to the destination.
type Tracker struct {
	store  *Store
	geo    *geo.Service
	rand   sim.Rand
	logger *slog.Logger
}

// NewTracker creates a Tracker over the given store and geo service.
func NewTracker(store *Store, geoService *geo.Service, rand sim.Rand, logger *slog.Logger) *Tracker {
	return &Tracker{
		store:  store,
		geo:    geoService,
		rand:   rand,
		logger: logger.With("component", "tracker"),
	}
}

// Tick runs one tracking step. Per-order failures are logged and do not stop
// the scan; the returned error is only the context's, checked between orders
// so a cancellation is observed promptly but never mid-order.
func (t *Tracker) Tick(ctx context.Context) error {
	for _, orderID := range t.store.OrdersInStatus(order.Preparing) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.rand.Float64() < DispatchProbability {
			t.store.UpdateStatus(ctx, orderID, order.OutForDelivery, "your order is on its way")
		}
	}

	for _, orderID := range t.store.OrdersInStatus(order.OutForDelivery) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.advance(ctx, orderID); err != nil {
			t.logger.Warn("failed to advance delivery",
				"order_id", orderID.String(), "error", err)
		}
	}

	return nil
}

// advance moves the order's agent one step toward the destination and applies
// the distance thresholds.
func (t *Tracker) advance(ctx context.Context, orderID kernel.UUID) error {
	snapshot, ok := t.store.GetStatus(orderID)
	if !ok || snapshot.Status != order.OutForDelivery {
		return nil
	}
	if snapshot.AgentID == nil {
		return fmt.Errorf("order %s is out for delivery without an agent", orderID)
	}

	sample, err := t.geo.Position(*snapshot.AgentID)
	if err != nil {
		return err
	}

	moved, err := sample.Point.MoveToward(snapshot.Destination, MoveFraction)
	if err != nil {
		return err
	}
	if _, err = t.geo.RecordPosition(*snapshot.AgentID, moved); err != nil {
		return err
	}

	remaining, err := moved.DistanceKm(snapshot.Destination)
	if err != nil {
		return err
	}

	switch {
	case remaining < DeliveredThresholdKm:
		t.store.UpdateStatus(ctx, orderID, order.Delivered, "order delivered")
	case remaining < NearbyThresholdKm:
		t.store.AppendNearby(ctx, orderID, remaining)
	}

	return nil
}
