// Package services provides domain services that orchestrate business
// operations across multiple aggregates.
//
// The package includes:
//   - AssignmentEngine: selects the nearest available delivery agent for an
//     order's destination
//
// Domain services coordinate between aggregates, implementing business logic
// that does not naturally belong to a single aggregate root.
package services
