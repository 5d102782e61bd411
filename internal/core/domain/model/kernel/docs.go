// Package kernel provides core domain primitives for the shelf-to-door
// delivery system.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a value object for geographic coordinates with the planar
//     distance approximation used by the whole simulation
//
// These primitives enforce domain invariants through constructor validation,
// are immutable, and are safe for concurrent use.
package kernel
