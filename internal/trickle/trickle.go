// Package trickle implements the adaptive beacon timer of spec §4.1: fast
// emission while the DODAG is unstable, exponentially slower once it
// settles, reset to the fast rate the instant something changes.
package trickle

import (
	"time"

	"DodagMesh/internal/randsrc"
)

// State is the trickle timer's state. It holds no reference to a clock or
// scheduler — per spec §4.1 design freedom, the caller (mote/timers.go)
// owns the single delayed callback and consults State at fire time, which
// is what makes this package testable without a real timer.
type State struct {
	Imin  time.Duration
	Imax  int // doublings cap
	K     int // redundancy constant
	I     time.Duration
	c     int
	rng   randsrc.Source
}

// New returns an initialized State: I := Imin, c := 0.
func New(imin time.Duration, imax, k int, rng randsrc.Source) *State {
	return &State{
		Imin: imin,
		Imax: imax,
		K:    k,
		I:    imin,
		c:    0,
		rng:  rng,
	}
}

// MaxInterval returns Imin*2^Imax, the invariant upper bound on I
// (spec §8 invariant 5).
func (s *State) MaxInterval() time.Duration {
	return s.Imin << s.Imax
}

// NextFireDelay returns a uniformly random delay in [I/2, I], the moment
// at which the caller should next consult ShouldFire and then call Expire.
func (s *State) NextFireDelay() time.Duration {
	half := s.I / 2
	span := s.I - half
	if span <= 0 {
		return half
	}
	return half + time.Duration(s.rng.IntN(int(span)+1))
}

// Observe records that a consistent transmission was observed (e.g. a DIO
// matching this node's own view was heard), incrementing the redundancy
// counter towards k.
func (s *State) Observe() {
	if s.c < s.K {
		s.c++
	}
}

// ShouldFire reports whether this interval's beacon should actually be
// emitted: the trickle suppression rule fires unless redundancy k has
// already been satisfied by overheard consistent transmissions.
func (s *State) ShouldFire() bool {
	return s.c < s.K
}

// Expire is called when the current interval I has elapsed. It doubles I
// (capped at Imin*2^Imax) and resets the redundancy counter, per spec
// §4.1's "update()" interval-elapsed behavior.
func (s *State) Expire() {
	doubled := s.I * 2
	if max := s.MaxInterval(); doubled > max {
		doubled = max
	}
	s.I = doubled
	s.c = 0
}

// Reset is called on inconsistency (topology change, new parent, rank
// change, children added/removed): I := Imin, c := 0. This is what
// shortens the next emission horizon back down (spec §8 invariant 5).
func (s *State) Reset() {
	s.I = s.Imin
	s.c = 0
}
