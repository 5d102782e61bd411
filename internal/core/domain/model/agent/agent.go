package agent

import (
	"errors"
	"fmt"

	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/pkg/errs"
	"shelf2door/internal/pkg/guard"
)

// MaxConcurrentOrders is the fixed number of orders an agent may hold at once.
const MaxConcurrentOrders = 3

// Domain errors for agent operations.
var (
	// ErrNameIsRequired is returned when attempting to create an agent without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create an agent without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrVehicleIsRequired is returned when attempting to create an agent without a vehicle class.
	ErrVehicleIsRequired = errs.NewValueIsRequiredError("vehicle")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")
	// ErrAgentHasNoHeadroom is returned when assigning to an agent that cannot accept more orders.
	ErrAgentHasNoHeadroom = errors.New("agent has no capacity for another order")
	// ErrAgentIsOffline is returned when assigning to an offline agent.
	ErrAgentIsOffline = errors.New("agent is offline")
	// ErrOrderAlreadyAssigned is returned when assigning an order the agent already holds.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned to this agent")
	// ErrOrderNotAssigned is returned when releasing an order the agent does not hold.
	ErrOrderNotAssigned = errors.New("order is not assigned to this agent")
	// ErrAgentHasAssignedOrders is returned when taking an agent offline while it still holds orders.
	ErrAgentHasAssignedOrders = errors.New("agent still has assigned orders")
)

// Agent represents a delivery agent.
//
// The aggregate enforces the availability invariant: an agent is Busy exactly
// when its assigned-order set is non-empty, and the set never grows beyond
// MaxConcurrentOrders. Position is not part of this aggregate; it is owned by
// the geo service and referenced by agent id.
type Agent struct {
	id             kernel.UUID
	name           string
	phone          string
	vehicle        string
	availability   Availability
	assignedOrders []kernel.UUID
	guard          guard.ConstructorGuard
}

// NewAgent creates an Agent in the Available state with no assigned orders.
func NewAgent(id kernel.UUID, name string, phone string, vehicle string) (*Agent, error) {
	agent := &Agent{
		availability: Available,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		agent.setID(id),
		agent.setName(name),
		agent.setPhone(phone),
		agent.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return agent, nil
}

// Validate checks that the Agent was created via NewAgent.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// IsEqual compares two agents by identity.
func (a *Agent) IsEqual(other *Agent) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

// ID returns the unique identifier of the agent.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// Phone returns the agent's phone number.
func (a *Agent) Phone() string {
	return a.phone
}

// Vehicle returns the agent's vehicle class, e.g. "bicycle" or "motorcycle".
func (a *Agent) Vehicle() string {
	return a.vehicle
}

// Availability returns the agent's current availability state.
func (a *Agent) Availability() Availability {
	return a.availability
}

// AssignedOrders returns the ids of the orders the agent currently holds.
// The returned slice is a copy.
func (a *Agent) AssignedOrders() []kernel.UUID {
	out := make([]kernel.UUID, len(a.assignedOrders))
	copy(out, a.assignedOrders)
	return out
}

// HasHeadroom reports whether the agent can accept another order: it must not
// be offline and must hold fewer than MaxConcurrentOrders.
func (a *Agent) HasHeadroom() bool {
	return a.availability != Offline && len(a.assignedOrders) < MaxConcurrentOrders
}

// Assign adds an order to the agent's assigned set and marks it Busy.
// Fails if the agent is offline, at capacity, or already holds the order.
func (a *Agent) Assign(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if a.availability == Offline {
		return ErrAgentIsOffline
	}
	if len(a.assignedOrders) >= MaxConcurrentOrders {
		return ErrAgentHasNoHeadroom
	}
	if a.holdsOrder(orderID) {
		return ErrOrderAlreadyAssigned
	}

	a.assignedOrders = append(a.assignedOrders, orderID)
	a.availability = Busy
	return nil
}

// Release removes an order from the agent's assigned set. The agent returns
// to Available only when the resulting set is empty.
func (a *Agent) Release(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	for i, assigned := range a.assignedOrders {
		if assigned.IsEqual(orderID) {
			a.assignedOrders = append(a.assignedOrders[:i], a.assignedOrders[i+1:]...)
			if len(a.assignedOrders) == 0 && a.availability == Busy {
				a.availability = Available
			}
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrOrderNotAssigned, orderID)
}

// MarkOffline takes the agent out of the assignment pool.
// Fails while the agent still holds orders.
func (a *Agent) MarkOffline() error {
	if len(a.assignedOrders) > 0 {
		return ErrAgentHasAssignedOrders
	}

	a.availability = Offline
	return nil
}

// MarkAvailable resets an offline agent back into the assignment pool.
// It is the external reset for the otherwise terminal offline state.
func (a *Agent) MarkAvailable() {
	if a.availability == Offline {
		a.availability = Available
	}
}

func (a *Agent) holdsOrder(orderID kernel.UUID) bool {
	for _, assigned := range a.assignedOrders {
		if assigned.IsEqual(orderID) {
			return true
		}
	}
	return false
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	a.name = name
	return nil
}

func (a *Agent) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	a.phone = phone
	return nil
}

func (a *Agent) setVehicle(vehicle string) error {
	if vehicle == "" {
		return ErrVehicleIsRequired
	}

	a.vehicle = vehicle
	return nil
}
