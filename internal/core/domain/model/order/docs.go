// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order moves through placed → confirmed → preparing → out_for_delivery →
// delivered, with cancelled reachable from any non-terminal state. Every
// transition appends an immutable TrackingUpdate to the order's audit log.
package order
