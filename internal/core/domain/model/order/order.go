package order

import (
	"errors"
	"time"

	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/pkg/errs"
	"shelf2door/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// OnTimeThresholdMinutes is the grace period after the estimated delivery
// time within which a delivery still counts as on time.
const OnTimeThresholdMinutes = 15

// Domain errors for order operations.
var (
	// ErrItemsAreRequired is returned when creating an order without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderAlreadyAssigned is returned when assigning an agent to an order that has one.
	ErrOrderAlreadyAssigned = errors.New("order already has an assigned agent")
	// ErrOrderNotDelivered is returned when reading delivery outcome of an undelivered order.
	ErrOrderNotDelivered = errors.New("order has not been delivered")
)

// Order is the aggregate root of the delivery lifecycle.
//
// The total is computed once at creation from the line items and never
// re-validated. The tracking log is append-only. Assignment and status are
// mutated in place by the order store and the tracking loop; callers must
// serialize access (the store owns the lock).
type Order struct {
	id                kernel.UUID
	customerID        kernel.UUID
	items             []LineItem
	total             decimal.Decimal
	address           string
	destination       kernel.GeoPoint
	status            Status
	createdAt         time.Time
	estimatedDelivery time.Time
	actualDelivery    *time.Time
	agentID           *kernel.UUID
	trackingLog       []TrackingUpdate
	guard             guard.ConstructorGuard
}

// NewOrder creates an Order in the Placed state. The total is the sum of the
// line item subtotals. The estimated delivery timestamp is chosen by the
// caller (the store randomizes it) and must be after createdAt.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	address string,
	destination kernel.GeoPoint,
	createdAt time.Time,
	estimatedDelivery time.Time,
) (*Order, error) {
	o := &Order{
		status: Placed,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(address),
		o.setDestination(destination),
		o.setTimestamps(createdAt, estimatedDelivery),
	); err != nil {
		return nil, err
	}

	o.total = decimal.Zero
	for _, item := range o.items {
		o.total = o.total.Add(item.Subtotal())
	}

	return o, nil
}

// Validate checks that the Order was created via NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	if other == nil {
		return false
	}
	return o.id.IsEqual(other.id)
}

// ID returns the unique identifier of the order.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the id of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns the order's line items. The returned slice is a copy.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// Total returns the order total computed at creation.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// Address returns the delivery address text.
func (o *Order) Address() string {
	return o.address
}

// Destination returns the delivery coordinates.
func (o *Order) Destination() kernel.GeoPoint {
	return o.destination
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedDelivery returns the estimate chosen at creation.
func (o *Order) EstimatedDelivery() time.Time {
	return o.estimatedDelivery
}

// ActualDelivery returns the delivery timestamp, nil until delivered.
func (o *Order) ActualDelivery() *time.Time {
	if o.actualDelivery == nil {
		return nil
	}
	t := *o.actualDelivery
	return &t
}

// AgentID returns the assigned agent's id, nil while unassigned.
func (o *Order) AgentID() *kernel.UUID {
	if o.agentID == nil {
		return nil
	}
	id := *o.agentID
	return &id
}

// TrackingLog returns the order's audit trail. The returned slice is a copy.
func (o *Order) TrackingLog() []TrackingUpdate {
	out := make([]TrackingUpdate, len(o.trackingLog))
	copy(out, o.trackingLog)
	return out
}

// Assign records the agent and moves the order Placed → Confirmed.
// Fails if the order already has an agent or is not in the Placed state.
func (o *Order) Assign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.agentID != nil {
		return ErrOrderAlreadyAssigned
	}

	next, err := o.status.TransitionTo(Confirmed)
	if err != nil {
		return err
	}

	o.agentID = &agentID
	o.status = next
	return nil
}

// ChangeStatus applies a state-machine transition to next.
// Delivered must be entered through MarkDelivered so the actual delivery
// timestamp is recorded.
func (o *Order) ChangeStatus(next Status) error {
	if next == Delivered {
		return errs.NewValueIsInvalidError("delivered must be set via MarkDelivered")
	}

	applied, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = applied
	return nil
}

// MarkDelivered transitions the order to Delivered and records now as the
// actual delivery timestamp.
func (o *Order) MarkDelivered(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("delivery timestamp")
	}

	applied, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	o.status = applied
	o.actualDelivery = &now
	return nil
}

// AppendTracking adds one entry to the order's audit trail.
func (o *Order) AppendTracking(update TrackingUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	o.trackingLog = append(o.trackingLog, update)
	return nil
}

// LatenessMinutes returns how many whole minutes after the estimate the order
// was actually delivered; negative when delivered early.
func (o *Order) LatenessMinutes() (int, error) {
	if o.actualDelivery == nil {
		return 0, ErrOrderNotDelivered
	}

	return int(o.actualDelivery.Sub(o.estimatedDelivery).Minutes()), nil
}

// IsOnTime reports whether the delivered order arrived within the on-time
// grace period after its estimate.
func (o *Order) IsOnTime() (bool, error) {
	lateness, err := o.LatenessMinutes()
	if err != nil {
		return false, err
	}

	return lateness <= OnTimeThresholdMinutes, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	o.address = address
	return nil
}

func (o *Order) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	o.destination = destination
	return nil
}

func (o *Order) setTimestamps(createdAt, estimatedDelivery time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	if !estimatedDelivery.After(createdAt) {
		return errs.NewValueIsInvalidError("estimated delivery must be after creation")
	}

	o.createdAt = createdAt
	o.estimatedDelivery = estimatedDelivery
	return nil
}
