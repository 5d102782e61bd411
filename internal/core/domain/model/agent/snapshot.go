package agent

import (
	"shelf2door/internal/core/domain/model/kernel"
)

// Snapshot is an immutable copy of an agent's state, safe to hand across the
// registry boundary without exposing the aggregate to concurrent mutation.
type Snapshot struct {
	ID             kernel.UUID
	Name           string
	Phone          string
	Vehicle        string
	Availability   Availability
	AssignedOrders []kernel.UUID
}

// Snapshot returns a point-in-time copy of the agent's state.
func (a *Agent) Snapshot() Snapshot {
	return Snapshot{
		ID:             a.id,
		Name:           a.name,
		Phone:          a.phone,
		Vehicle:        a.vehicle,
		Availability:   a.availability,
		AssignedOrders: a.AssignedOrders(),
	}
}
