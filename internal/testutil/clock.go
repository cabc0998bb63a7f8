// Package testutil provides deterministic test doubles for the engine's
// ambient dependencies.
package testutil

import (
	"time"

	"github.com/quarrow/tsarray/internal/engine"
)

// FixedClock returns the same instant on every read, making "now"/"today"
// token resolution deterministic in tests.
type FixedClock struct {
	T time.Time
}

var _ engine.Clock = FixedClock{}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// At builds a FixedClock from calendar fields in loc.
func At(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) FixedClock {
	return FixedClock{T: time.Date(year, month, day, hour, min, sec, nsec, loc)}
}
