// Package clock provides the monotonic session time source.
package clock

import "time"

// Clock yields monotonic elapsed-time readings. Readings are relative to an
// arbitrary base and immune to wall-clock adjustments.
type Clock interface {
	Now() time.Duration
}

type monotonic struct {
	base time.Time
}

// NewMonotonic returns a Clock based on the runtime monotonic reading.
func NewMonotonic() Clock {
	return &monotonic{base: time.Now()}
}

func (c *monotonic) Now() time.Duration {
	return time.Since(c.base)
}

// Manual is a hand-advanced Clock for tests.
type Manual struct {
	Current time.Duration
}

// Now implements Clock.
func (m *Manual) Now() time.Duration {
	return m.Current
}

// Advance moves the clock forward.
func (m *Manual) Advance(d time.Duration) {
	m.Current += d
}
