// Package tracking is the application core: it owns order records, drives
// their state-machine transitions, matches new orders to delivery agents and
// fans out customer notifications on every transition.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"shelf2door/internal/core/domain/model/customer"
	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/core/domain/model/order"
	"shelf2door/internal/core/domain/services"
	"shelf2door/internal/core/geo"
	"shelf2door/internal/core/ports"
	"shelf2door/internal/core/registry"
	"shelf2door/internal/pkg/sim"
)

// Bounds for the randomized estimated-delivery offset chosen at creation.
const (
	MinEstimateMinutes = 30.0
	MaxEstimateMinutes = 120.0
)

// Archiver persists order snapshots to a durable side channel. The store
// never reads them back; failures are logged and never fail a transition.
type Archiver interface {
	Save(ctx context.Context, snapshot Snapshot) error
}

// Store owns all order records and serializes their mutation behind a single
// lock. Both the synchronous API path and the background tracking loop go
// through it. Notifications and archive writes are dispatched on goroutines
// after the lock is released, so a slow channel never blocks a transition on
// another order.
type Store struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order

	customers *registry.CustomerDirectory
	agents    *registry.AgentRegistry
	geo       *geo.Service
	engine    services.AssignmentEngine
	notifier  ports.Notifier
	archive   Archiver
	rand      sim.Rand
	now       func() time.Time
	logger    *slog.Logger
}

// NewStore creates a Store. archive may be nil, which disables archiving.
func NewStore(
	customers *registry.CustomerDirectory,
	agents *registry.AgentRegistry,
	geoService *geo.Service,
	notifier ports.Notifier,
	archive Archiver,
	rand sim.Rand,
	logger *slog.Logger,
) *Store {
	return &Store{
		orders:    make(map[kernel.UUID]*order.Order),
		customers: customers,
		agents:    agents,
		geo:       geoService,
		engine:    services.NewAssignmentEngine(geoService),
		notifier:  notifier,
		archive:   archive,
		rand:      rand,
		now:       time.Now,
		logger:    logger.With("component", "order_store"),
	}
}

// CreateOrder registers a new order for the customer, sends the confirmation
// notification and immediately attempts agent assignment. An unknown customer
// is a validation failure; no agent being available is not, the order simply
// stays placed.
//
// addressOverride replaces the customer's default address text when non-empty;
// the delivery coordinates always come from the customer record.
func (s *Store) CreateOrder(
	ctx context.Context,
	customerID kernel.UUID,
	items []order.LineItem,
	addressOverride string,
) (kernel.UUID, error) {
	c, err := s.customers.Get(customerID)
	if err != nil {
		return kernel.UUID{}, err
	}

	address := addressOverride
	if address == "" {
		address = c.Address()
	}

	now := s.now()

	// s.rand is shared by every API call; draws must stay under s.mu.
	s.mu.Lock()
	estimateOffset := time.Duration(
		sim.Uniform(s.rand, MinEstimateMinutes, MaxEstimateMinutes) * float64(time.Minute))

	o, err := order.NewOrder(kernel.NewUUID(), customerID, items, address,
		c.Location(), now, now.Add(estimateOffset))
	if err != nil {
		s.mu.Unlock()
		return kernel.UUID{}, err
	}

	s.orders[o.ID()] = o
	s.appendTrackingLocked(o, order.Placed, "order received", nil)
	snapshot := snapshotOf(o)
	s.mu.Unlock()

	s.logger.Info("order created",
		"order_id", o.ID().String(),
		"customer_id", customerID.String(),
		"total", o.Total().StringFixed(2))

	title, body := placedMessage(c, o)
	s.dispatch(ctx, c, title, body)
	s.archiveSnapshot(ctx, snapshot)

	s.tryAssign(ctx, c, o.ID())

	return o.ID(), nil
}

// UpdateStatus applies a state-machine transition to the order. Returns false
// for an unknown order id or an illegal transition: this path is exercised
// by a best-effort background loop, so failures are logged, never raised.
func (s *Store) UpdateStatus(ctx context.Context, orderID kernel.UUID, next order.Status, message string) bool {
	s.mu.Lock()
	o, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		s.logger.Warn("status update for unknown order", "order_id", orderID.String())
		return false
	}

	agentID := o.AgentID()

	var transitionErr error
	if next == order.Delivered {
		transitionErr = o.MarkDelivered(s.now())
	} else {
		transitionErr = o.ChangeStatus(next)
	}
	if transitionErr != nil {
		s.mu.Unlock()
		s.logger.Warn("illegal status transition",
			"order_id", orderID.String(),
			"to", next.String(),
			"error", transitionErr)
		return false
	}

	var details map[string]string
	onTime := false

	switch next {
	case order.OutForDelivery:
		// Start of live tracking: pin the agent's current position to the log.
		if agentID != nil {
			if sample, posErr := s.geo.Position(*agentID); posErr == nil {
				details = map[string]string{
					"lat": strconv.FormatFloat(sample.Point.Lat(), 'f', 6, 64),
					"lng": strconv.FormatFloat(sample.Point.Lng(), 'f', 6, 64),
				}
			}
		}
	case order.Delivered, order.Cancelled:
		if agentID != nil {
			if releaseErr := s.agents.Release(*agentID, orderID); releaseErr != nil {
				s.logger.Warn("agent release failed",
					"order_id", orderID.String(),
					"agent_id", agentID.String(),
					"error", releaseErr)
			}
		}
	}

	if next == order.Delivered {
		var onTimeErr error
		if onTime, onTimeErr = o.IsOnTime(); onTimeErr == nil {
			lateness, _ := o.LatenessMinutes()
			details = map[string]string{
				"on_time":          strconv.FormatBool(onTime),
				"lateness_minutes": strconv.Itoa(lateness),
			}
		}
	}

	if message == "" {
		message = "status changed to " + next.String()
	}
	s.appendTrackingLocked(o, next, message, details)
	snapshot := snapshotOf(o)
	s.mu.Unlock()

	s.logger.Info("order status changed",
		"order_id", orderID.String(), "to", next.String())

	if c, custErr := s.customers.Get(snapshot.CustomerID); custErr == nil {
		var title, body string
		if next == order.Delivered {
			title, body = deliveredMessage(c, o, onTime)
		} else {
			title, body = statusMessage(c, o, next)
		}
		s.dispatch(ctx, c, title, body)
	}
	s.archiveSnapshot(ctx, snapshot)

	return true
}

// GetStatus returns a deep snapshot of the order, enriched with the assigned
// agent's position and, while out for delivery, a fresh ETA. It never mutates
// stored state. The second return value is false for an unknown order id.
func (s *Store) GetStatus(orderID kernel.UUID) (Snapshot, bool) {
	s.mu.RLock()
	o, ok := s.orders[orderID]
	if !ok {
		s.mu.RUnlock()
		return Snapshot{}, false
	}
	snapshot := snapshotOf(o)
	s.mu.RUnlock()

	if snapshot.AgentID != nil && !snapshot.Status.IsTerminal() {
		if sample, err := s.geo.Position(*snapshot.AgentID); err == nil {
			snapshot.AgentPosition = &sample
			if snapshot.Status == order.OutForDelivery {
				if eta, etaErr := s.geo.ETAMinutes(*snapshot.AgentID, snapshot.Destination); etaErr == nil {
					snapshot.ETAMinutes = &eta
				}
			}
		}
	}

	return snapshot, true
}

// OrdersInStatus returns the ids of all orders currently in the given status.
// Iteration order is unspecified.
func (s *Store) OrdersInStatus(status order.Status) []kernel.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []kernel.UUID
	for id, o := range s.orders {
		if o.Status() == status {
			out = append(out, id)
		}
	}
	return out
}

// AppendNearby records a "driver nearby" tracking update without changing the
// order's status and notifies the customer. Returns false when the order is
// unknown or no longer out for delivery.
func (s *Store) AppendNearby(ctx context.Context, orderID kernel.UUID, distanceKm float64) bool {
	s.mu.Lock()
	o, ok := s.orders[orderID]
	if !ok || o.Status() != order.OutForDelivery {
		s.mu.Unlock()
		return false
	}

	agentID := o.AgentID()
	s.appendTrackingLocked(o, order.OutForDelivery,
		fmt.Sprintf("driver is %.1f km away", distanceKm),
		map[string]string{"distance_km": strconv.FormatFloat(distanceKm, 'f', 2, 64)})
	customerID := o.CustomerID()
	s.mu.Unlock()

	agentName := "your driver"
	if agentID != nil {
		if a, err := s.agents.Get(*agentID); err == nil {
			agentName = a.Name
		}
	}

	if c, err := s.customers.Get(customerID); err == nil {
		title, body := nearbyMessage(c, o, agentName, distanceKm)
		s.dispatch(ctx, c, title, body)
	}

	return true
}

// tryAssign matches a placed order to the nearest available agent. No agent
// being available is a soft failure: the order stays placed and the condition
// is logged.
func (s *Store) tryAssign(ctx context.Context, c *customer.Customer, orderID kernel.UUID) {
	s.mu.Lock()
	o, ok := s.orders[orderID]
	if !ok || o.Status() != order.Placed {
		s.mu.Unlock()
		return
	}
	dest := o.Destination()

	selected, err := s.engine.SelectAgent(s.agents.AvailableAgents(), dest)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, services.ErrNoAgentAvailable) {
			s.logger.Warn("no capacity: order left unassigned", "order_id", orderID.String())
		} else {
			s.logger.Error("agent selection failed", "order_id", orderID.String(), "error", err)
		}
		return
	}

	if err := s.agents.Assign(selected.ID, orderID); err != nil {
		s.mu.Unlock()
		s.logger.Warn("agent assignment failed",
			"order_id", orderID.String(),
			"agent_id", selected.ID.String(),
			"error", err)
		return
	}
	if err := o.Assign(selected.ID); err != nil {
		if releaseErr := s.agents.Release(selected.ID, orderID); releaseErr != nil {
			s.logger.Error("rollback release failed", "error", releaseErr)
		}
		s.mu.Unlock()
		s.logger.Error("order assignment failed", "order_id", orderID.String(), "error", err)
		return
	}

	s.appendTrackingLocked(o, order.Confirmed, "assigned to "+selected.Name, nil)
	snapshot := snapshotOf(o)
	s.mu.Unlock()

	s.logger.Info("order assigned",
		"order_id", orderID.String(),
		"agent_id", selected.ID.String(),
		"agent", selected.Name)

	var eta *int
	if minutes, etaErr := s.geo.ETAMinutes(selected.ID, dest); etaErr == nil {
		eta = &minutes
	}

	title, body := assignedMessage(c, o, selected, eta)
	s.dispatch(ctx, c, title, body)
	s.archiveSnapshot(ctx, snapshot)
}

// appendTrackingLocked appends one audit entry. Callers must hold the lock.
func (s *Store) appendTrackingLocked(o *order.Order, status order.Status, message string, details map[string]string) {
	update, err := order.NewTrackingUpdate(s.now(), status, message, details)
	if err != nil {
		s.logger.Error("tracking update construction failed",
			"order_id", o.ID().String(), "error", err)
		return
	}
	if err := o.AppendTracking(update); err != nil {
		s.logger.Error("tracking update append failed",
			"order_id", o.ID().String(), "error", err)
	}
}

// dispatch fans a notification out on a fresh goroutine so the simulated
// channel latency never blocks the caller.
func (s *Store) dispatch(ctx context.Context, c *customer.Customer, title, body string) {
	go s.notifier.Notify(context.WithoutCancel(ctx), c, title, body)
}

// archiveSnapshot writes the snapshot to the archive on a fresh goroutine.
func (s *Store) archiveSnapshot(ctx context.Context, snapshot Snapshot) {
	if s.archive == nil {
		return
	}
	saveCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.archive.Save(saveCtx, snapshot); err != nil {
			s.logger.Warn("order archive write failed",
				"order_id", snapshot.ID.String(), "error", err)
		}
	}()
}
