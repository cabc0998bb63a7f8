// Package tick defines the engine's canonical time representation: a signed
// 64-bit count of nanoseconds since the Unix epoch, with one reserved sentinel
// meaning "not a time".
//
// Everything downstream (classification, rescaling, formatting) speaks ticks.
// The representable range is deliberately one value narrower than int64 so the
// sentinel can never collide with a real instant.
package tick

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// NullTick is the reserved sentinel meaning "not a time".
	NullTick int64 = math.MinInt64

	// MinTick and MaxTick bound the representable range. Any computation
	// landing outside [MinTick, MaxTick] is an overflow condition.
	MinTick int64 = math.MinInt64 + 1
	MaxTick int64 = math.MaxInt64
)

// Range boundaries decomposed into (seconds, nanoseconds-within-second) so
// bounds can be checked before the seconds-to-nanoseconds multiply.
const (
	maxSecs  int64 = MaxTick / 1e9           // 9223372036
	maxNanos int64 = MaxTick - maxSecs*1e9   // 854775807
	minSecs  int64 = -9223372037             // floor(MinTick / 1e9)
	minNanos int64 = MinTick%1e9 + 1e9       // 145224193 (== MinTick - minSecs*1e9, avoiding int64 overflow)
)

// ErrOutOfBounds reports a value outside the representable tick range.
// Callers wrap it with the offending value and array position.
var ErrOutOfBounds = errors.New("value outside representable nanosecond range")

// IsNull reports whether t is the not-a-time sentinel.
func IsNull(t int64) bool {
	return t == NullTick
}

// Fields is a calendar decomposition of an instant at nanosecond resolution.
// Fields carry no timezone; the zone (if any) lives alongside them.
type Fields struct {
	Year       int
	Month      time.Month
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// FromTime decomposes t in its own location.
func FromTime(t time.Time) Fields {
	return Fields{
		Year:       t.Year(),
		Month:      t.Month(),
		Day:        t.Day(),
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
	}
}

// Time materializes f in loc. A nil loc means UTC.
func (f Fields) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Nanosecond, loc)
}

// Encode converts calendar fields (read as UTC) to a canonical tick,
// bounds-checking against the representable range.
func Encode(f Fields) (int64, error) {
	return FromTimeTick(f.Time(time.UTC))
}

// FromTimeTick converts a time.Time to a canonical tick, bounds-checking
// against the representable range. Unlike time.Time.UnixNano, out-of-range
// instants return ErrOutOfBounds instead of wrapping silently.
func FromTimeTick(t time.Time) (int64, error) {
	secs := t.Unix()
	nanos := int64(t.Nanosecond())
	if secs > maxSecs || (secs == maxSecs && nanos > maxNanos) {
		return 0, fmt.Errorf("%v: %w", t, ErrOutOfBounds)
	}
	if secs < minSecs || (secs == minSecs && nanos < minNanos) {
		return 0, fmt.Errorf("%v: %w", t, ErrOutOfBounds)
	}
	return secs*1e9 + nanos, nil
}

// Decode converts a canonical tick back to UTC calendar fields.
// The sentinel must be handled by the caller; Decode treats its input as a
// real instant.
func Decode(t int64) Fields {
	return FromTime(time.Unix(0, t).UTC())
}

// Midnight returns the tick of the given date's 00:00:00 UTC.
func Midnight(year int, month time.Month, day int) (int64, error) {
	return Encode(Fields{Year: year, Month: month, Day: day})
}
