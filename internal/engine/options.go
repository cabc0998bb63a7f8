package engine

import (
	"time"

	"github.com/quarrow/tsarray/internal/tick"
)

// config carries the parsing context for one conversion call.
type config struct {
	dayFirst  bool
	yearFirst bool
	forceUTC  bool
	strictISO bool
	layout    string // explicit format override; empty means infer
	unit      tick.Unit
	loc       *time.Location // wall-clock zone for ConvertInLocation
	clock     Clock
}

// ConvertOption configures a conversion call.
type ConvertOption func(*config)

// WithDayFirst makes ambiguous day/month strings read day-first
// ("01/02/2024" becomes February 1st).
func WithDayFirst(v bool) ConvertOption {
	return func(c *config) { c.dayFirst = v }
}

// WithYearFirst makes a leading two-digit number in an ambiguous string read
// as the year ("10/11/12" becomes 2010-11-12).
func WithYearFirst(v bool) ConvertOption {
	return func(c *config) { c.yearFirst = v }
}

// WithForceUTC attaches UTC to the result and skips timezone consensus.
// Naive inputs are read as UTC wall time; "now" resolves to the UTC instant.
func WithForceUTC(v bool) ConvertOption {
	return func(c *config) { c.forceUTC = v }
}

// WithStrictISO requires strings to be strict ISO 8601 and rejects bare
// numerics; violations are policy-governed parse failures.
func WithStrictISO(v bool) ConvertOption {
	return func(c *config) { c.strictISO = v }
}

// WithFormat supplies an explicit reference layout for string elements,
// replacing the ISO scan. Strings that miss the layout do not fall through
// to the fuzzy parser.
func WithFormat(layout string) ConvertOption {
	return func(c *config) { c.layout = layout }
}

// WithClock injects the wall clock used to resolve "now"/"today".
func WithClock(clk Clock) ConvertOption {
	return func(c *config) { c.clock = clk }
}

func newConfig(opts []ConvertOption) config {
	cfg := config{
		unit:  tick.Nanosecond,
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
