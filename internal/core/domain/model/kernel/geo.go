package kernel

import (
	"errors"
	"fmt"
	"math"

	"shelf2door/internal/pkg/errs"
	"shelf2door/internal/pkg/guard"
)

// Latitude and longitude bounds for a valid GeoPoint, in decimal degrees.
const (
	GeoPointMinLat float64 = -90
	GeoPointMaxLat float64 = 90
	GeoPointMinLng float64 = -180
	GeoPointMaxLng float64 = 180
)

// KmPerDegree is the rough kilometre length of one degree used by the planar
// distance approximation.
const KmPerDegree = 111.0

// ErrGeoPointIsNotConstructed is returned when using an improperly initialized
// GeoPoint. GeoPoints must be created via the NewGeoPoint constructor.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position with validated coordinates.
// It is an immutable value object; the zero value is invalid and fails
// validation.
//
// Distances between GeoPoints are a deliberate planar approximation
// (Euclidean distance in degrees scaled by KmPerDegree), not geodesic. The
// whole tracking simulation, including its delivery thresholds, is calibrated
// against this approximation, so it must not be "fixed" to haversine.
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude in
// decimal degrees. Both coordinates must be within the valid bounds.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in decimal degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceKm returns the planar distance to other in kilometres:
// sqrt(dlat² + dlng²) × KmPerDegree. See the GeoPoint doc for why this is
// intentionally not geodesic.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dlat := p.lat - other.lat
	dlng := p.lng - other.lng
	return math.Sqrt(dlat*dlat+dlng*dlng) * KmPerDegree, nil
}

// MoveToward returns a new point moved the given fraction of the remaining
// vector toward target. A fraction of 0.1 closes 10% of the gap; repeated
// application approaches the target exponentially without ever reaching it.
func (p GeoPoint) MoveToward(target GeoPoint, fraction float64) (GeoPoint, error) {
	if err := errors.Join(p.Validate(), target.Validate()); err != nil {
		return GeoPoint{}, err
	}
	if fraction < 0 || fraction > 1 {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("fraction", fraction, 0, 1)
	}

	return NewGeoPoint(
		p.lat+(target.lat-p.lat)*fraction,
		p.lng+(target.lng-p.lng)*fraction,
	)
}

// setLat sets the latitude with bounds validation.
// Pointer receiver is used intentionally for self-encapsulated construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoPointMinLat || lat > GeoPointMaxLat {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoPointMinLat, GeoPointMaxLat)
	}

	p.lat = lat
	return nil
}

// setLng sets the longitude with bounds validation.
// Pointer receiver is used intentionally for self-encapsulated construction.
func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoPointMinLng || lng > GeoPointMaxLng {
		return errs.NewValueIsOutOfRangeError("lng", lng, GeoPointMinLng, GeoPointMaxLng)
	}

	p.lng = lng
	return nil
}
