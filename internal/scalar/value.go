// Package scalar defines the closed set of input element kinds the conversion
// engine understands. Dispatch over an input array is a single exhaustive type
// switch per element; there is no open-ended type chain.
package scalar

import (
	"fmt"
	"time"
)

// Scalar is a sealed interface over the input element kinds.
// Only Null, DateTime, Date, Timestamp, Int, Float, String, and Other
// implement it. Anything a caller cannot express with the first seven kinds
// must be wrapped in Other, which the engine treats as a type mismatch.
type Scalar interface {
	scalar() // sealed
}

// Null is the language-level null element.
type Null struct{}

func (Null) scalar() {}

// DateTime is a native datetime element. Aware records whether the value
// carries a known zone or offset; a naive DateTime's Time holds wall-clock
// fields in UTC purely as a container.
type DateTime struct {
	Time  time.Time
	Aware bool
}

func (DateTime) scalar() {}

// Date is a native date-only element. It converts to that date's midnight.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (Date) scalar() {}

// Timestamp is a pre-existing canonical tick value (nanoseconds since epoch),
// reinterpreted directly without rescaling.
type Timestamp int64

func (Timestamp) scalar() {}

// Int is a bare integer element, scaled by the active unit multiplier.
type Int int64

func (Int) scalar() {}

// Float is a bare floating-point element. NaN maps to null.
type Float float64

func (Float) scalar() {}

// String is a string element, routed through the ISO scanner and then the
// fuzzy parser.
type String string

func (String) scalar() {}

// Other wraps any value outside the closed kind set. The engine never
// converts an Other; encountering one aborts the numeric pass.
type Other struct {
	Value any
}

func (Other) scalar() {}

// FromAny maps an arbitrary Go value onto the closed kind set.
// time.Time values are taken as zone-aware; build a DateTime directly to
// represent a naive wall-clock value.
func FromAny(v any) Scalar {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Scalar:
		return val
	case time.Time:
		return DateTime{Time: val, Aware: true}
	case int:
		return Int(val)
	case int32:
		return Int(val)
	case int64:
		return Int(val)
	case float32:
		return Float(val)
	case float64:
		return Float(val)
	case string:
		return String(val)
	default:
		return Other{Value: val}
	}
}

// Render returns a short human-readable form of s for error messages.
func Render(s Scalar) string {
	switch val := s.(type) {
	case Null:
		return "null"
	case DateTime:
		return val.Time.Format(time.RFC3339Nano)
	case Date:
		return fmt.Sprintf("%04d-%02d-%02d", val.Year, val.Month, val.Day)
	case Timestamp:
		return fmt.Sprintf("timestamp(%d)", int64(val))
	case Int:
		return fmt.Sprintf("%d", int64(val))
	case Float:
		return fmt.Sprintf("%g", float64(val))
	case String:
		return fmt.Sprintf("%q", string(val))
	case Other:
		return fmt.Sprintf("%v (%T)", val.Value, val.Value)
	}
	return fmt.Sprintf("%v", s)
}

// Unwrap returns the original Go value an element stands for, used by the
// degrade paths that keep offending elements in their original form.
func Unwrap(s Scalar) any {
	switch val := s.(type) {
	case Null:
		return nil
	case DateTime:
		return val.Time
	case Date:
		return time.Date(val.Year, val.Month, val.Day, 0, 0, 0, 0, time.UTC)
	case Timestamp:
		return int64(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case Other:
		return val.Value
	}
	return s
}
