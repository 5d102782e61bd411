// Package sim isolates the randomness used by the delivery simulation behind
// a small injectable interface, so tests can supply seeded or fixed-sequence
// generators instead of relying on global random state.
package sim

// Rand is the subset of *math/rand/v2.Rand the simulation depends on.
type Rand interface {
	// Float64 returns a pseudo-random number in the half-open interval [0.0, 1.0).
	Float64() float64
	// IntN returns a non-negative pseudo-random number in the half-open interval [0, n).
	IntN(n int) int
}

// Uniform draws a value uniformly from the half-open interval [minValue, maxValue).
func Uniform(r Rand, minValue, maxValue float64) float64 {
	return minValue + r.Float64()*(maxValue-minValue)
}
