// Package randsrc is the Random facade (spec §6): uniform pseudo-random
// integers, used by the trickle timer's fire-delay jitter and the sensing
// period's +/- jitter. No ecosystem library in the retrieved pack offers a
// bounded-uniform-int helper better suited than the standard library's
// math/rand/v2; this is a thin, test-substitutable wrapper around it
// rather than a hand-rolled generator.
package randsrc

import "math/rand/v2"

// Source produces uniform pseudo-random integers in a half-open range.
type Source interface {
	// IntN returns a uniform random integer in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// realSource wraps the default math/rand/v2 generator.
type realSource struct{}

// NewReal returns the default, process-global Source.
func NewReal() Source { return realSource{} }

func (realSource) IntN(n int) int { return rand.IntN(n) }

// JitterSeconds returns a uniform random offset in [-spread, +spread],
// used for the sensing period's +/- jitter (spec §5 LIGHT_PERIOD).
func JitterSeconds(src Source, spread int) int {
	if spread <= 0 {
		return 0
	}
	return src.IntN(2*spread+1) - spread
}
