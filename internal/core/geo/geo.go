// Package geo owns the last-known position samples of delivery agents and
// computes distance and ETA estimates from them.
//
// Only the latest sample per agent is retained. ETA is intentionally
// non-deterministic: the traffic multiplier is re-drawn on every call, so
// callers must treat the result as an estimate, not a contract.
package geo

import (
	"errors"
	"sync"
	"time"

	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/pkg/sim"
)

// Simulation constants for agent movement and ETA estimation.
const (
	// MinSpeedKmh and MaxSpeedKmh bound the simulated instantaneous speed
	// drawn for each recorded position.
	MinSpeedKmh = 15.0
	MaxSpeedKmh = 45.0

	// MinTrafficMultiplier and MaxTrafficMultiplier bound the randomized
	// traffic inflation applied to each ETA estimate.
	MinTrafficMultiplier = 1.2
	MaxTrafficMultiplier = 2.0

	// HandlingMinutes is the fixed handover time added to every ETA.
	HandlingMinutes = 5
)

// ErrNoPositionSample is returned when an agent has no recorded position.
var ErrNoPositionSample = errors.New("no position sample recorded for agent")

// Sample is the latest known position of an agent together with the simulated
// instantaneous speed at capture time.
type Sample struct {
	AgentID    kernel.UUID
	Point      kernel.GeoPoint
	RecordedAt time.Time
	SpeedKmh   float64
}

// Service stores position samples keyed by agent id.
// It is safe for concurrent use.
type Service struct {
	mu      sync.RWMutex
	samples map[kernel.UUID]Sample
	rand    sim.Rand
	now     func() time.Time
}

// NewService creates a Service drawing speeds and traffic multipliers from
// the given random source.
func NewService(rand sim.Rand) *Service {
	return &Service{
		samples: make(map[kernel.UUID]Sample),
		rand:    rand,
		now:     time.Now,
	}
}

// RecordPosition overwrites the agent's latest sample with the given point,
// a fresh timestamp and a newly drawn instantaneous speed.
func (s *Service) RecordPosition(agentID kernel.UUID, point kernel.GeoPoint) (Sample, error) {
	if err := agentID.Validate(); err != nil {
		return Sample{}, err
	}
	if err := point.Validate(); err != nil {
		return Sample{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sample := Sample{
		AgentID:    agentID,
		Point:      point,
		RecordedAt: s.now(),
		SpeedKmh:   sim.Uniform(s.rand, MinSpeedKmh, MaxSpeedKmh),
	}
	s.samples[agentID] = sample
	return sample, nil
}

// Position returns the agent's latest sample, or ErrNoPositionSample when
// none has been recorded.
func (s *Service) Position(agentID kernel.UUID) (Sample, error) {
	if err := agentID.Validate(); err != nil {
		return Sample{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sample, ok := s.samples[agentID]
	if !ok {
		return Sample{}, ErrNoPositionSample
	}
	return sample, nil
}

// ETAMinutes estimates the minutes for the agent to reach dest:
// distance / last sampled speed, inflated by a randomized traffic multiplier,
// plus the fixed handling time, truncated to whole minutes.
// Fails with ErrNoPositionSample when the agent's position is unknown.
func (s *Service) ETAMinutes(agentID kernel.UUID, dest kernel.GeoPoint) (int, error) {
	sample, err := s.Position(agentID)
	if err != nil {
		return 0, err
	}

	distanceKm, err := sample.Point.DistanceKm(dest)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	multiplier := sim.Uniform(s.rand, MinTrafficMultiplier, MaxTrafficMultiplier)
	s.mu.Unlock()

	travelMinutes := distanceKm / sample.SpeedKmh * 60 * multiplier
	return int(travelMinutes) + HandlingMinutes, nil
}
