package engine

import "fmt"

// Policy governs how element-level overflow and parse failures are handled.
type Policy int

const (
	// Raise aborts the whole conversion on the first failing element.
	Raise Policy = iota

	// Ignore abandons the numeric pass, returning elements in a
	// null-normalized object form with failures left unconverted.
	Ignore

	// Coerce nulls the failing element and keeps converting.
	Coerce
)

// String returns the lowercase policy name.
func (p Policy) String() string {
	switch p {
	case Raise:
		return "raise"
	case Ignore:
		return "ignore"
	case Coerce:
		return "coerce"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a policy name to its value.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "raise":
		return Raise, nil
	case "ignore":
		return Ignore, nil
	case "coerce":
		return Coerce, nil
	}
	return Raise, fmt.Errorf("unknown policy %q: must be raise, ignore, or coerce", s)
}
