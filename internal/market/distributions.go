package market

import (
	"math"
	"math/rand"
)

// Uniform returns a sample from U(lower, upper), grounded on
// original_source/CryptoSimulator/library_built_in/prob_distributions.py's
// Uniform (X ~ U(a,b) = (b-a)U + a). No library in the example pack
// supplies a probability-distribution API, so this and Normal are
// deliberately built on math/rand alone -- see DESIGN.md.
func Uniform(rng *rand.Rand, lower, upper float64) float64 {
	return lower + (upper-lower)*rng.Float64()
}

// Normal returns a sample from N(mean, std) via the Box-Muller transform.
// The source instead simulates this via an accept-rejection Monte Carlo
// loop over a hand-written density function; Box-Muller gets the same
// distribution from two uniforms with no rejection loop, so it's used here
// instead of porting that loop verbatim.
func Normal(rng *rand.Rand, mean, std float64) float64 {
	u1, u2 := rng.Float64(), rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + std*z0
}
