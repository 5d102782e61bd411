package order

import (
	"fmt"

	"shelf2door/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Placed ──> Confirmed ──> Preparing ──> OutForDelivery ──> Delivered
//	   │           │             │               │
//	   └───────────┴─────────────┴───────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Transitions are driven exclusively
// through the table below, so adding a state forces the table to be revisited.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when an order is first created.
	Placed

	// Confirmed indicates the order has been assigned to a delivery agent.
	Confirmed

	// Preparing indicates the order is being picked and packed.
	Preparing

	// OutForDelivery indicates the assigned agent is moving toward the
	// delivery destination.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before delivery. Terminal.
	Cancelled
)

// statusStrings maps every Status to its wire representation.
var statusStrings = map[Status]string{
	Unknown:        "unknown",
	Placed:         "placed",
	Confirmed:      "confirmed",
	Preparing:      "preparing",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

// transitions is the full state-machine table. A status missing from the map
// or an empty target list means no outgoing transitions (terminal state).
var transitions = map[Status][]Status{
	Placed:         {Confirmed, Cancelled},
	Confirmed:      {Preparing, Cancelled},
	Preparing:      {OutForDelivery, Cancelled},
	OutForDelivery: {Delivered, Cancelled},
	Delivered:      {},
	Cancelled:      {},
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the state machine allows moving from s to
// next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, target := range transitions[s] {
		if target == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the transition from s to next and returns next.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status transition is invalid",
			fmt.Errorf("cannot transition from %s to %s", s, next),
		)
	}
	return next, nil
}

// ParseStatus converts a wire name to a Status.
// Returns an error for unrecognized or invalid names, including "unknown".
func ParseStatus(s string) (Status, error) {
	for status, name := range statusStrings {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status", s),
	)
}
