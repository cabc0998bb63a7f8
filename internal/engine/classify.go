package engine

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/quarrow/tsarray/internal/parse"
	"github.com/quarrow/tsarray/internal/scalar"
	"github.com/quarrow/tsarray/internal/tick"
)

// outcomeKind is the per-element result variant reduced by the driver.
// There is no exception-style control flow across the hot loop.
type outcomeKind int

const (
	// outConverted carries a canonical tick (possibly the null sentinel).
	outConverted outcomeKind = iota

	// outRetryObject means the element's kind cannot be handled uniformly;
	// the driver abandons the numeric pass for the object fallback.
	outRetryObject

	// outFailed carries a policy-governed overflow or parse failure.
	outFailed
)

type outcome struct {
	kind outcomeKind
	tick int64

	// numeric marks bare int/float sources (retroactively nulled when mixed
	// with datetime sources under coerce).
	numeric bool

	// datetimeLike marks native datetime/date/timestamp sources.
	datetimeLike bool

	err *ConvertError
}

func converted(t int64) outcome {
	return outcome{kind: outConverted, tick: t}
}

func failed(err *ConvertError) outcome {
	return outcome{kind: outFailed, err: err}
}

// classify dispatches one element to a candidate canonical tick, a null, a
// retry-as-object signal, or a failure, updating the zone tracker as it goes.
func classify(pos int, s scalar.Scalar, cfg config, z *zoneTracker) outcome {
	switch val := s.(type) {
	case scalar.Null:
		return converted(tick.NullTick)

	case scalar.DateTime:
		return classifyDateTime(pos, val, cfg, z)

	case scalar.Date:
		t, err := cfg.naiveTick(tick.Fields{Year: val.Year, Month: val.Month, Day: val.Day})
		if err != nil {
			return failed(newOverflowError(pos, scalar.Render(val), err))
		}
		out := converted(t)
		out.datetimeLike = true
		return out

	case scalar.Timestamp:
		// Already canonical ticks; the sentinel is the timestamp null.
		if int64(val) == tick.NullTick {
			return converted(tick.NullTick)
		}
		out := converted(int64(val))
		out.datetimeLike = true
		return out

	case scalar.Int:
		if int64(val) == tick.NullTick {
			return converted(tick.NullTick)
		}
		if cfg.strictISO {
			return failed(newParseError(pos, scalar.Render(val), errStrictNumeric))
		}
		t, err := scaleInt(int64(val), cfg.unit.Multiplier())
		if err != nil {
			return failed(newOverflowError(pos, scalar.Render(val), err))
		}
		out := converted(t)
		out.numeric = true
		return out

	case scalar.Float:
		if math.IsNaN(float64(val)) {
			return converted(tick.NullTick)
		}
		if cfg.strictISO {
			return failed(newParseError(pos, scalar.Render(val), errStrictNumeric))
		}
		t, err := scaleFloat(float64(val), cfg.unit.Multiplier())
		if err != nil {
			return failed(newOverflowError(pos, scalar.Render(val), err))
		}
		out := converted(t)
		out.numeric = true
		return out

	case scalar.String:
		return classifyString(pos, string(val), cfg, z)

	default:
		return outcome{kind: outRetryObject}
	}
}

func classifyDateTime(pos int, val scalar.DateTime, cfg config, z *zoneTracker) outcome {
	var t int64
	var err error
	if val.Aware {
		_, off := val.Time.Zone()
		z.recordOffset(off)
		t, err = tick.FromTimeTick(val.Time)
	} else {
		z.recordNaive()
		t, err = cfg.naiveTick(tick.FromTime(val.Time))
	}
	if err != nil {
		return failed(newOverflowError(pos, scalar.Render(val), err))
	}
	out := converted(t)
	out.datetimeLike = true
	return out
}

func classifyString(pos int, s string, cfg config, z *zoneTracker) outcome {
	if parse.IsNaT(s) {
		return converted(tick.NullTick)
	}

	// The unit-qualified entry point narrows strings to numerics.
	if cfg.unit != tick.Nanosecond {
		return classifyNumericString(pos, s, cfg)
	}

	if cfg.layout != "" {
		return classifyWithLayout(pos, s, cfg, z)
	}

	if r, ok := parse.ScanISO(s); ok {
		t, err := cfg.resolveParsed(r.Fields, r.HasOffset, r.Offset, z)
		if err != nil {
			return failed(newOverflowError(pos, strconv.Quote(s), err))
		}
		return converted(t)
	}

	if tok, ok := relativeToken(pos, s, cfg, z); ok {
		return tok
	}

	if cfg.strictISO {
		return failed(newParseError(pos, strconv.Quote(s), errNotISO))
	}

	r, err := parse.Fuzzy(s, cfg.dayFirst, cfg.yearFirst)
	if err != nil {
		return failed(newParseError(pos, strconv.Quote(s), err))
	}
	t, err := cfg.resolveParsed(r.Fields, r.HasOffset, r.Offset, z)
	if err != nil {
		return failed(newOverflowError(pos, strconv.Quote(s), err))
	}
	return converted(t)
}

// classifyWithLayout parses a string against the explicit layout.
// Layout misses are parse failures after the relative-token check; the fuzzy
// parser is never consulted when a layout was given.
func classifyWithLayout(pos int, s string, cfg config, z *zoneTracker) outcome {
	t, err := time.Parse(cfg.layout, s)
	if err != nil {
		if tok, ok := relativeToken(pos, s, cfg, z); ok {
			return tok
		}
		return failed(newParseError(pos, strconv.Quote(s), err))
	}
	if layoutHasZone(cfg.layout) {
		_, off := t.Zone()
		tk, err := tick.FromTimeTick(t)
		if err != nil {
			return failed(newOverflowError(pos, strconv.Quote(s), err))
		}
		z.recordOffset(off)
		return converted(tk)
	}
	z.recordNaive()
	tk, err := cfg.naiveTick(tick.FromTime(t))
	if err != nil {
		return failed(newOverflowError(pos, strconv.Quote(s), err))
	}
	return converted(tk)
}

// classifyNumericString handles strings under a non-canonical unit, where
// only numeric text is convertible.
func classifyNumericString(pos int, s string, cfg config) outcome {
	trimmed := strings.TrimSpace(s)
	if iv, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		t, err := scaleInt(iv, cfg.unit.Multiplier())
		if err != nil {
			return failed(newOverflowError(pos, strconv.Quote(s), err))
		}
		out := converted(t)
		out.numeric = true
		return out
	}
	fv, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return failed(newParseError(pos, strconv.Quote(s), err))
	}
	if math.IsNaN(fv) {
		return converted(tick.NullTick)
	}
	t, serr := scaleFloat(fv, cfg.unit.Multiplier())
	if serr != nil {
		return failed(newOverflowError(pos, strconv.Quote(s), serr))
	}
	out := converted(t)
	out.numeric = true
	return out
}

// relativeToken resolves the literal "now"/"today" tokens against the
// injected clock, at nanosecond precision.
func relativeToken(pos int, s string, cfg config, z *zoneTracker) (outcome, bool) {
	switch s {
	case parse.TokenNow:
		t, err := cfg.nowTick()
		if err != nil {
			return failed(newOverflowError(pos, strconv.Quote(s), err)), true
		}
		z.recordNaive()
		return converted(t), true
	case parse.TokenToday:
		t, err := cfg.todayTick()
		if err != nil {
			return failed(newOverflowError(pos, strconv.Quote(s), err)), true
		}
		z.recordNaive()
		return converted(t), true
	}
	return outcome{}, false
}

// resolveParsed turns parsed wall fields plus an optional fixed offset into
// a canonical tick, recording the zone contribution.
func (c config) resolveParsed(f tick.Fields, hasOffset bool, offset int, z *zoneTracker) (int64, error) {
	if hasOffset {
		z.recordOffset(offset)
		base, err := tick.Encode(f)
		if err != nil {
			return 0, err
		}
		return shiftToUTC(base, offset)
	}
	z.recordNaive()
	return c.naiveTick(f)
}

// naiveTick encodes wall-clock fields: in the caller-supplied zone for the
// timezone-aware entry point, otherwise as UTC.
func (c config) naiveTick(f tick.Fields) (int64, error) {
	if c.loc != nil {
		return tick.FromTimeTick(f.Time(c.loc))
	}
	return tick.Encode(f)
}

// nowTick resolves "now". Without force-UTC the local (or caller-zone) wall
// clock is read; with it, the UTC instant.
func (c config) nowTick() (int64, error) {
	t := c.clock.Now()
	if c.forceUTC || c.loc != nil {
		return tick.FromTimeTick(t)
	}
	_, off := t.Zone()
	base, err := tick.FromTimeTick(t)
	if err != nil {
		return 0, err
	}
	return base + int64(off)*1e9, nil
}

// todayTick resolves "today": the midnight of nowTick's calendar date.
func (c config) todayTick() (int64, error) {
	t := c.clock.Now()
	switch {
	case c.forceUTC:
		t = t.UTC()
	case c.loc != nil:
		t = t.In(c.loc)
	}
	if c.loc != nil {
		return tick.FromTimeTick(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc))
	}
	return tick.Midnight(t.Year(), t.Month(), t.Day())
}

// shiftToUTC subtracts a wall offset from an encoded tick with wraparound
// detection near the range bounds.
func shiftToUTC(base int64, offset int) (int64, error) {
	shifted := base - int64(offset)*1e9
	if offset > 0 && shifted > base {
		return 0, tick.ErrOutOfBounds
	}
	if offset < 0 && shifted < base {
		return 0, tick.ErrOutOfBounds
	}
	if shifted == tick.NullTick {
		return 0, tick.ErrOutOfBounds
	}
	return shifted, nil
}

// scaleInt multiplies an integer by the unit multiplier with overflow checks.
func scaleInt(v, m int64) (int64, error) {
	if m == 1 {
		return v, nil
	}
	if v > tick.MaxTick/m || v < tick.MinTick/m {
		return 0, tick.ErrOutOfBounds
	}
	return v * m, nil
}

// scaleFloat multiplies a float by the unit multiplier, rounding sub-tick
// fractions, with overflow checks against the representable range.
func scaleFloat(f float64, m int64) (int64, error) {
	v := f * float64(m)
	if v >= float64(tick.MaxTick) || v <= float64(tick.NullTick) {
		return 0, tick.ErrOutOfBounds
	}
	iv := int64(math.Round(v))
	if iv == tick.NullTick {
		return 0, tick.ErrOutOfBounds
	}
	return iv, nil
}

func layoutHasZone(layout string) bool {
	return strings.Contains(layout, "-07") ||
		strings.Contains(layout, "Z07") ||
		strings.Contains(layout, "MST")
}
