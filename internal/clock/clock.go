// Package clock provides the Clock facade (spec §6 "Clock/Timer facade"):
// schedule one-shot callbacks, query monotonic time, cancel/re-arm at will.
// It is a thin wrapper over github.com/benbjohnson/clock so that mote and
// trickle never depend on wall time directly and tests can drive a mock
// clock instead of sleeping.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Timer is a cancelable, re-armable one-shot timer handle.
type Timer interface {
	// Stop cancels the timer. It is a no-op if the timer already fired or
	// was already stopped. Per spec §5, cancellation is synchronous.
	Stop() bool
}

// Clock is the facade every timed component (trickle, mote timers) depends
// on instead of the time package directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc schedules fn to run once, after d elapses. The returned
	// Timer can be used to cancel the callback before it fires.
	AfterFunc(d time.Duration, fn func()) Timer
}

// real wraps *bclock.Clock, the production implementation.
type real struct {
	c bclock.Clock
}

// NewReal returns a Clock backed by the real wall clock.
func NewReal() Clock {
	return &real{c: bclock.New()}
}

func (r *real) Now() time.Time { return r.c.Now() }

func (r *real) AfterFunc(d time.Duration, fn func()) Timer {
	return r.c.AfterFunc(d, fn)
}

// Mock exposes the subset of *bclock.Mock the tests in this module use: a
// deterministic clock that only advances when Add is called, so trickle and
// mote timer scenarios (S1-S6) run instantly and without flakiness.
type Mock struct {
	m *bclock.Mock
}

// NewMock returns a Clock whose Now() starts at the mock's zero time and
// only advances via Add.
func NewMock() *Mock {
	return &Mock{m: bclock.NewMock()}
}

func (m *Mock) Now() time.Time { return m.m.Now() }

func (m *Mock) AfterFunc(d time.Duration, fn func()) Timer {
	return m.m.AfterFunc(d, fn)
}

// Add advances the mock clock by d, firing any timers whose deadline has
// elapsed, in expiry order (spec §5 ordering guarantee).
func (m *Mock) Add(d time.Duration) {
	m.m.Add(d)
}
