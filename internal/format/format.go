// Package format renders canonical tick arrays back to strings.
//
// Without an explicit layout or timezone it infers, once per array, the
// minimum sub-second precision needed to round-trip every non-null value and
// renders everything at that fixed width through a calendar-decomposition
// fast path, avoiding spurious trailing zeros. Layouts and timezones route
// through the general time package renderer.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/quarrow/tsarray/internal/tick"
)

// DefaultNullRepr is the string the null sentinel renders as when the caller
// does not supply one.
const DefaultNullRepr = "NaT"

// Canonical layouts recognized textually and routed to the fast path at the
// implied fixed precision.
const (
	LayoutSeconds = "2006-01-02 15:04:05"
	LayoutMicros  = "2006-01-02 15:04:05.000000"
	LayoutDate    = "2006-01-02"
)

// precision is the fixed sub-second width chosen for a whole array.
type precision int

const (
	precDate precision = iota
	precSeconds
	precMillis
	precMicros
	precNanos
)

// Format renders ticks as a same-shape string array.
//
// loc is the representative timezone (nil means naive), layout an optional
// explicit reference layout, nullRepr the rendering of the null sentinel
// (DefaultNullRepr when empty).
func Format(ticks []int64, loc *time.Location, layout, nullRepr string) []string {
	if nullRepr == "" {
		nullRepr = DefaultNullRepr
	}

	if loc == nil {
		switch layout {
		case "":
			return fastPath(ticks, inferPrecision(ticks), nullRepr)
		case LayoutSeconds:
			return fastPath(ticks, precSeconds, nullRepr)
		case LayoutMicros:
			return fastPath(ticks, precMicros, nullRepr)
		case LayoutDate:
			return fastPath(ticks, precDate, nullRepr)
		}
	}

	return generalPath(ticks, loc, layout, nullRepr)
}

// inferPrecision picks the smallest fixed precision that round-trips every
// non-null tick. All-null (or empty) arrays render at second precision.
func inferPrecision(ticks []int64) precision {
	prec := precDate
	for _, t := range ticks {
		if tick.IsNull(t) {
			continue
		}
		switch {
		case t%1e9 != 0:
			switch {
			case t%1e3 != 0:
				return precNanos // nothing finer exists
			case t%1e6 != 0:
				prec = max(prec, precMicros)
			default:
				prec = max(prec, precMillis)
			}
		case t%(86400*1e9) != 0:
			prec = max(prec, precSeconds)
		}
	}
	if prec == precDate {
		return dateOrSeconds(ticks)
	}
	return prec
}

// dateOrSeconds keeps the date-only short-circuit honest: it applies only
// when at least one real value sits on a midnight boundary; an all-null
// array renders at second precision.
func dateOrSeconds(ticks []int64) precision {
	for _, t := range ticks {
		if !tick.IsNull(t) {
			return precDate
		}
	}
	return precSeconds
}

// fastPath renders every element at one fixed precision from decomposed UTC
// calendar fields.
func fastPath(ticks []int64, prec precision, nullRepr string) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		if tick.IsNull(t) {
			out[i] = nullRepr
			continue
		}
		out[i] = renderFixed(tick.Decode(t), prec)
	}
	return out
}

func renderFixed(f tick.Fields, prec precision) string {
	switch prec {
	case precDate:
		return fmt.Sprintf("%04d-%02d-%02d", f.Year, f.Month, f.Day)
	case precSeconds:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
			f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second)
	case precMillis:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d",
			f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Nanosecond/1e6)
	case precMicros:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%06d",
			f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Nanosecond/1e3)
	default:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%09d",
			f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Nanosecond)
	}
}

// generalPath renders each element through the time package. An element
// whose layout expansion produces no calendar text at all falls back to the
// default ISO-like rendering for that element only.
func generalPath(ticks []int64, loc *time.Location, layout, nullRepr string) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		if tick.IsNull(t) {
			out[i] = nullRepr
			continue
		}
		tm := time.Unix(0, t)
		if loc != nil {
			tm = tm.In(loc)
		} else {
			tm = tm.UTC()
		}
		out[i] = renderPattern(tm, layout, loc != nil)
	}
	return out
}

func renderPattern(tm time.Time, layout string, zoned bool) string {
	if layout != "" {
		if s := tm.Format(layout); s != layout || containsDigit(s) {
			return s
		}
	}
	return renderDefault(tm, zoned)
}

// renderDefault is the ISO-like per-element rendering: second precision
// padded out to the value's own sub-second width, with the offset appended
// for zoned output.
func renderDefault(tm time.Time, zoned bool) string {
	layout := "2006-01-02 15:04:05"
	switch ns := tm.Nanosecond(); {
	case ns == 0:
	case ns%1e6 == 0:
		layout += ".000"
	case ns%1e3 == 0:
		layout += ".000000"
	default:
		layout += ".000000000"
	}
	if zoned {
		layout += "-07:00"
	}
	return tm.Format(layout)
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
