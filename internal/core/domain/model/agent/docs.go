// Package agent contains the DeliveryAgent aggregate: identity, vehicle
// class, availability state and the set of currently assigned orders.
//
// Availability follows a small state machine: an agent becomes busy when it
// holds at least one order and returns to available only when its last order
// is released. Offline agents are excluded from assignment until reset.
package agent
