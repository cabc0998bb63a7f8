// Package parse turns strings into calendar decompositions.
//
// Two layers: a strict ISO-8601 scanner (single left-to-right pass, reports
// the inferred sub-second resolution and any fixed offset) and a best-effort
// fuzzy parser for everything else.
package parse

import (
	"time"

	"github.com/quarrow/tsarray/internal/tick"
)

// ISOResult is the outcome of a successful strict ISO-8601 scan.
type ISOResult struct {
	Fields tick.Fields

	// Unit is the resolution implied by the text: Second when no fraction
	// is present, else the smallest unit covering the fractional digits.
	Unit tick.Unit

	// HasOffset is true when the string carried Z or a fixed numeric
	// offset; Offset is then seconds east of UTC.
	HasOffset bool
	Offset    int
}

// ScanISO scans s as strict ISO 8601. Accepted shapes:
//
//	YYYY-MM-DD
//	YYYY-MM-DD[T ]HH
//	YYYY-MM-DD[T ]HH:MM
//	YYYY-MM-DD[T ]HH:MM:SS[.fffffffff]
//
// each optionally followed by Z, ±HH, ±HHMM, or ±HH:MM. The whole string
// must be consumed; trailing garbage is a scan failure, not a partial match.
func ScanISO(s string) (ISOResult, bool) {
	var r ISOResult
	i := 0

	year, ok := takeDigits(s, &i, 4)
	if !ok || !takeByte(s, &i, '-') {
		return r, false
	}
	month, ok := takeDigits(s, &i, 2)
	if !ok || !takeByte(s, &i, '-') {
		return r, false
	}
	day, ok := takeDigits(s, &i, 2)
	if !ok {
		return r, false
	}
	if month < 1 || month > 12 || day < 1 || day > daysInMonth(year, time.Month(month)) {
		return r, false
	}

	r.Fields = tick.Fields{Year: year, Month: time.Month(month), Day: day}
	r.Unit = tick.Second

	if i == len(s) {
		return r, true
	}

	// Time part requires a single 'T' or ' ' separator.
	if s[i] != 'T' && s[i] != ' ' {
		return r, false
	}
	i++

	hour, ok := takeDigits(s, &i, 2)
	if !ok || hour > 23 {
		return r, false
	}
	r.Fields.Hour = hour

	if takeByte(s, &i, ':') {
		minute, ok := takeDigits(s, &i, 2)
		if !ok || minute > 59 {
			return r, false
		}
		r.Fields.Minute = minute

		if takeByte(s, &i, ':') {
			sec, ok := takeDigits(s, &i, 2)
			if !ok || sec > 59 {
				return r, false
			}
			r.Fields.Second = sec

			if takeByte(s, &i, '.') {
				nanos, digits, ok := takeFraction(s, &i)
				if !ok {
					return r, false
				}
				r.Fields.Nanosecond = nanos
				switch {
				case digits <= 3:
					r.Unit = tick.Millisecond
				case digits <= 6:
					r.Unit = tick.Microsecond
				default:
					r.Unit = tick.Nanosecond
				}
			}
		}
	}

	if i == len(s) {
		return r, true
	}

	off, ok := takeOffset(s, &i)
	if !ok || i != len(s) {
		return r, false
	}
	r.HasOffset = true
	r.Offset = off
	return r, true
}

// takeDigits reads exactly n ASCII digits at *i.
func takeDigits(s string, i *int, n int) (int, bool) {
	if *i+n > len(s) {
		return 0, false
	}
	v := 0
	for k := 0; k < n; k++ {
		c := s[*i+k]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	*i += n
	return v, true
}

// takeByte consumes b at *i if present.
func takeByte(s string, i *int, b byte) bool {
	if *i < len(s) && s[*i] == b {
		*i++
		return true
	}
	return false
}

// takeFraction reads 1..9 fractional-second digits and scales to nanoseconds.
func takeFraction(s string, i *int) (nanos, digits int, ok bool) {
	start := *i
	v := 0
	for *i < len(s) && s[*i] >= '0' && s[*i] <= '9' && *i-start < 9 {
		v = v*10 + int(s[*i]-'0')
		*i++
	}
	digits = *i - start
	if digits == 0 {
		return 0, 0, false
	}
	for k := digits; k < 9; k++ {
		v *= 10
	}
	return v, digits, true
}

// takeOffset reads Z, ±HH, ±HHMM, or ±HH:MM and returns seconds east of UTC.
func takeOffset(s string, i *int) (int, bool) {
	if takeByte(s, i, 'Z') {
		return 0, true
	}
	sign := 0
	switch {
	case takeByte(s, i, '+'):
		sign = 1
	case takeByte(s, i, '-'):
		sign = -1
	default:
		return 0, false
	}
	hours, ok := takeDigits(s, i, 2)
	if !ok || hours > 23 {
		return 0, false
	}
	minutes := 0
	if *i < len(s) {
		takeByte(s, i, ':')
		minutes, ok = takeDigits(s, i, 2)
		if !ok || minutes > 59 {
			return 0, false
		}
	}
	return sign * (hours*3600 + minutes*60), true
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to this month's last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
