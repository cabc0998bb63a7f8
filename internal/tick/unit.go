package tick

import "fmt"

// Unit is one of the fixed set of input resolutions the engine accepts.
// Everything is normalized to nanoseconds (the canonical unit) via Multiplier.
type Unit int

const (
	Nanosecond Unit = iota
	Microsecond
	Millisecond
	Second
)

// multipliers maps a Unit to the number of canonical ticks per one unit.
var multipliers = [...]int64{
	Nanosecond:  1,
	Microsecond: 1e3,
	Millisecond: 1e6,
	Second:      1e9,
}

// Multiplier returns the number of canonical ticks in one u.
func (u Unit) Multiplier() int64 {
	return multipliers[u]
}

// String returns the short unit name used in flags and options files.
func (u Unit) String() string {
	switch u {
	case Nanosecond:
		return "ns"
	case Microsecond:
		return "us"
	case Millisecond:
		return "ms"
	case Second:
		return "s"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit parses the short unit names accepted by the CLI.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "ns":
		return Nanosecond, nil
	case "us":
		return Microsecond, nil
	case "ms":
		return Millisecond, nil
	case "s":
		return Second, nil
	}
	return Nanosecond, fmt.Errorf("unknown unit %q: must be one of s, ms, us, ns", s)
}
