package engine

import (
	"math"
	"strconv"
	"time"

	"github.com/quarrow/tsarray/internal/parse"
	"github.com/quarrow/tsarray/internal/scalar"
	"github.com/quarrow/tsarray/internal/tick"
)

// convertObjects is the object fallback converter: a fresh scan of the
// original input producing per-element native time values, used when uniform
// numeric conversion is impossible (mixed offsets, inconvertible kinds).
//
// It honors the same day-first/year-first hints and policy as the numeric
// pass. Nulls are marked with nil, the object-domain null. The result never
// carries a representative timezone; per-element zone diversity is exactly
// why this path exists.
func convertObjects(values []scalar.Scalar, policy Policy, cfg config) (Result, error) {
	objs := make([]any, len(values))
	for i, v := range values {
		o, cerr := objectify(i, v, cfg)
		if cerr != nil {
			switch policy {
			case Raise:
				return Result{}, cerr
			case Coerce:
				objs[i] = nil
			case Ignore:
				objs[i] = scalar.Unwrap(v)
			}
			continue
		}
		objs[i] = o
	}
	return Result{Objects: objs}, nil
}

// objectify converts one element to its native object form, or returns the
// original value for kinds the object domain does not recognize.
func objectify(pos int, v scalar.Scalar, cfg config) (any, *ConvertError) {
	switch val := v.(type) {
	case scalar.Null:
		return nil, nil

	case scalar.DateTime:
		return val.Time, nil

	case scalar.Date:
		return time.Date(val.Year, val.Month, val.Day, 0, 0, 0, 0, cfg.objectZone()), nil

	case scalar.Timestamp:
		if int64(val) == tick.NullTick {
			return nil, nil
		}
		return time.Unix(0, int64(val)).UTC(), nil

	case scalar.Int:
		if int64(val) == tick.NullTick {
			return nil, nil
		}
		return int64(val), nil

	case scalar.Float:
		if math.IsNaN(float64(val)) {
			return nil, nil
		}
		return float64(val), nil

	case scalar.String:
		return objectifyString(pos, string(val), cfg)

	case scalar.Other:
		return val.Value, nil
	}
	return scalar.Unwrap(v), nil
}

func objectifyString(pos int, s string, cfg config) (any, *ConvertError) {
	if parse.IsNaT(s) {
		return nil, nil
	}

	if cfg.layout != "" {
		t, err := time.Parse(cfg.layout, s)
		if err == nil {
			return t, nil
		}
		if o, ok := relativeObject(s, cfg); ok {
			return o, nil
		}
		return nil, newParseError(pos, strconv.Quote(s), err)
	}

	if r, ok := parse.ScanISO(s); ok {
		loc := cfg.objectZone()
		if r.HasOffset {
			loc = fixedZone(r.Offset)
		}
		return r.Fields.Time(loc), nil
	}

	if o, ok := relativeObject(s, cfg); ok {
		return o, nil
	}

	if cfg.strictISO {
		return nil, newParseError(pos, strconv.Quote(s), errNotISO)
	}

	r, err := parse.Fuzzy(s, cfg.dayFirst, cfg.yearFirst)
	if err != nil {
		return nil, newParseError(pos, strconv.Quote(s), err)
	}
	loc := cfg.objectZone()
	if r.HasOffset {
		loc = fixedZone(r.Offset)
	}
	return r.Fields.Time(loc), nil
}

// relativeObject resolves "now"/"today" to a native time value.
func relativeObject(s string, cfg config) (any, bool) {
	switch s {
	case parse.TokenNow:
		t := cfg.clock.Now()
		if cfg.forceUTC {
			return t.UTC(), true
		}
		if cfg.loc != nil {
			return t.In(cfg.loc), true
		}
		// Naive: local wall fields in the UTC container.
		return tick.FromTime(t).Time(time.UTC), true
	case parse.TokenToday:
		t := cfg.clock.Now()
		switch {
		case cfg.forceUTC:
			t = t.UTC()
		case cfg.loc != nil:
			t = t.In(cfg.loc)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, cfg.objectZone()), true
	}
	return nil, false
}

// objectZone is the container zone for wall-clock values on the object path:
// the caller-supplied zone when one was given, else UTC.
func (c config) objectZone() *time.Location {
	if c.loc != nil {
		return c.loc
	}
	return time.UTC
}
