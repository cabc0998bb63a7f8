package engine

import "time"

// Result is the outcome of a conversion call: either a canonical tick array
// (with an optional representative timezone) or an object array.
//
// Exactly one of Ticks and Objects is non-nil. The object form carries no
// representative timezone; each element there keeps its own zone if it has
// one. That per-element diversity is exactly why the object form exists.
type Result struct {
	// Ticks holds canonical nanosecond ticks; tick.NullTick marks nulls.
	Ticks []int64

	// Objects holds native time.Time values, nil nulls, and (under the
	// ignore policy) original unconverted scalars.
	Objects []any

	// Location is the representative timezone for Ticks, attached only
	// when every zone-bearing element agreed. nil means naive.
	Location *time.Location
}

// IsObject reports whether the result took the object fallback form.
func (r Result) IsObject() bool {
	return r.Objects != nil
}
