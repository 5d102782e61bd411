// Package registry holds the in-memory registries shared between the
// synchronous request path and the background tracking loop. Each registry
// serializes mutation behind its own lock and hands out snapshots, never live
// aggregates.
package registry

import (
	"errors"
	"sync"

	"shelf2door/internal/core/domain/model/agent"
	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/pkg/errs"
)

// ErrAgentAlreadyRegistered is returned when registering an agent id twice.
var ErrAgentAlreadyRegistered = errors.New("agent is already registered")

// AgentRegistry owns delivery-agent availability and assignment state.
// It is safe for concurrent use.
type AgentRegistry struct {
	mu     sync.RWMutex
	agents map[kernel.UUID]*agent.Agent
}

// NewAgentRegistry creates an empty AgentRegistry.
func NewAgentRegistry() *AgentRegistry {
	return &AgentRegistry{
		agents: make(map[kernel.UUID]*agent.Agent),
	}
}

// Register adds an agent to the registry.
func (r *AgentRegistry) Register(a *agent.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.agents[a.ID()]; ok {
		return ErrAgentAlreadyRegistered
	}

	r.agents[a.ID()] = a
	return nil
}

// Get returns a snapshot of the agent with the given id.
func (r *AgentRegistry) Get(agentID kernel.UUID) (agent.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[agentID]
	if !ok {
		return agent.Snapshot{}, errs.NewObjectNotFoundError("agentID", agentID.String())
	}
	return a.Snapshot(), nil
}

// All returns snapshots of every registered agent.
// Iteration order is unspecified.
func (r *AgentRegistry) All() []agent.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]agent.Snapshot, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a.Snapshot())
	}
	return out
}

// AvailableAgents returns snapshots of the agents that can accept another
// order: not offline and below their concurrency capacity.
// Iteration order is unspecified.
func (r *AgentRegistry) AvailableAgents() []agent.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]agent.Snapshot, 0, len(r.agents))
	for _, a := range r.agents {
		if a.HasHeadroom() {
			out = append(out, a.Snapshot())
		}
	}
	return out
}

// Assign adds an order to the agent's assigned set, marking it busy.
func (r *AgentRegistry) Assign(agentID, orderID kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[agentID]
	if !ok {
		return errs.NewObjectNotFoundError("agentID", agentID.String())
	}
	return a.Assign(orderID)
}

// Release removes an order from the agent's assigned set. The agent returns
// to available only when its set becomes empty.
func (r *AgentRegistry) Release(agentID, orderID kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[agentID]
	if !ok {
		return errs.NewObjectNotFoundError("agentID", agentID.String())
	}
	return a.Release(orderID)
}

// MarkOffline takes an idle agent out of the assignment pool.
func (r *AgentRegistry) MarkOffline(agentID kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[agentID]
	if !ok {
		return errs.NewObjectNotFoundError("agentID", agentID.String())
	}
	return a.MarkOffline()
}

// MarkAvailable resets an offline agent back into the assignment pool.
func (r *AgentRegistry) MarkAvailable(agentID kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[agentID]
	if !ok {
		return errs.NewObjectNotFoundError("agentID", agentID.String())
	}
	a.MarkAvailable()
	return nil
}
