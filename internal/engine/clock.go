package engine

import "time"

// Clock is the engine's only ambient dependency: the wall clock consulted
// when resolving the literal "now" and "today" string tokens.
//
// Production code uses SystemClock; tests inject a fixed clock so token
// resolution is deterministic (see internal/testutil).
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
