package services

import (
	"errors"
	"math"

	"shelf2door/internal/core/domain/model/agent"
	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/core/geo"
)

// ErrNoAgentAvailable is returned when no candidate agent can take the order.
// This is a soft failure: the order simply stays unassigned and a later
// attempt may succeed once an agent frees up.
var ErrNoAgentAvailable = errors.New("no delivery agent available")

// PositionSource resolves an agent's last known position.
type PositionSource interface {
	Position(agentID kernel.UUID) (geo.Sample, error)
}

// AssignmentEngine is the domain service that matches an order to the best
// available delivery agent.
//
// Selection minimizes the planar distance between the agent's last known
// position and the order's destination. Ties keep the first minimal candidate
// encountered, which depends on the caller's candidate ordering; ties are
// geometrically rare enough that no stable rule is imposed.
type AssignmentEngine struct {
	positions PositionSource
}

// NewAssignmentEngine creates an AssignmentEngine reading positions from the
// given source.
func NewAssignmentEngine(positions PositionSource) AssignmentEngine {
	return AssignmentEngine{positions: positions}
}

// SelectAgent picks the candidate nearest to dest.
//
// Candidates without a recorded position are skipped: an agent the system has
// never located cannot be ranked. Returns ErrNoAgentAvailable when the
// candidate set is empty or fully skipped.
func (e AssignmentEngine) SelectAgent(candidates []agent.Snapshot, dest kernel.GeoPoint) (agent.Snapshot, error) {
	if err := dest.Validate(); err != nil {
		return agent.Snapshot{}, err
	}

	var (
		best         agent.Snapshot
		bestDistance = math.MaxFloat64
		found        bool
	)

	for _, candidate := range candidates {
		sample, err := e.positions.Position(candidate.ID)
		if err != nil {
			if errors.Is(err, geo.ErrNoPositionSample) {
				continue
			}
			return agent.Snapshot{}, err
		}

		distance, err := sample.Point.DistanceKm(dest)
		if err != nil {
			return agent.Snapshot{}, err
		}

		if distance < bestDistance {
			bestDistance = distance
			best = candidate
			found = true
		}
	}

	if !found {
		return agent.Snapshot{}, ErrNoAgentAvailable
	}

	return best, nil
}
