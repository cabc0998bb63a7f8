// Package engine converts arrays of heterogeneous date-like scalars into the
// canonical nanosecond tick representation, and degrades to an object array
// when no single numeric representation can capture the input.
//
// One call is one full array pass. Inputs are read-only, outputs are freshly
// allocated, and no state survives across calls; the only ambient dependency
// is the injected Clock.
package engine

import (
	"math"
	"time"

	"github.com/quarrow/tsarray/internal/parse"
	"github.com/quarrow/tsarray/internal/scalar"
	"github.com/quarrow/tsarray/internal/tick"
)

// Convert runs the main array pass: classify every element, apply the error
// policy, resolve timezone consensus, and either return canonical ticks with
// an optional representative timezone or delegate to the object fallback.
//
// Rules, in order:
//  1. Overflow/parse failures are policy-governed: raise aborts with the
//     element's position, coerce nulls the element, ignore abandons the
//     numeric pass for the null-normalized degrade path.
//  2. A type mismatch aborts the numeric pass and delegates to the object
//     fallback under every policy.
//  3. After a successful pass under coerce, if datetime-like and bare numeric
//     sources were mixed, the numeric slots are retroactively nulled.
//  4. Unless UTC is forced, a timezone is attached only when every
//     zone-bearing element agreed; disagreement forces the object fallback.
func Convert(values []scalar.Scalar, policy Policy, opts ...ConvertOption) (Result, error) {
	return run(values, policy, newConfig(opts))
}

// ConvertWithUnit is the unit-qualified variant of Convert: bare numerics
// (and numeric strings) are read in the stated unit and normalized to
// canonical ticks. Its ignore-mode degrade path wraps convertible values as
// native timestamps instead of invoking the general object fallback, since
// its input domain is only null/numeric/string.
func ConvertWithUnit(values []scalar.Scalar, unit tick.Unit, policy Policy, opts ...ConvertOption) (Result, error) {
	cfg := newConfig(opts)
	cfg.unit = unit
	return run(values, policy, cfg)
}

// ConvertInLocation treats naive wall-clock inputs (naive datetimes, dates,
// offset-less strings) as already expressed in loc rather than UTC. This is
// a deliberately narrower semantic than Convert, kept as its own entry point.
// Epoch-based inputs (ints, floats, raw timestamps) are never shifted.
func ConvertInLocation(values []scalar.Scalar, loc *time.Location, policy Policy, opts ...ConvertOption) (Result, error) {
	cfg := newConfig(opts)
	cfg.loc = loc
	return run(values, policy, cfg)
}

func run(values []scalar.Scalar, policy Policy, cfg config) (Result, error) {
	ticks := make([]int64, len(values))
	z := newZoneTracker()

	var sawDatetime, sawNumeric bool
	var numericSlots []int

	for i, v := range values {
		out := classify(i, v, cfg, z)
		switch out.kind {
		case outRetryObject:
			// Partial numeric results are discarded, never merged; the
			// fallback restarts from position zero.
			return convertObjects(values, policy, cfg)

		case outFailed:
			switch policy {
			case Raise:
				return Result{}, out.err
			case Coerce:
				ticks[i] = tick.NullTick
			case Ignore:
				if cfg.unit != tick.Nanosecond {
					return Result{Objects: rescaleDegrade(values, cfg)}, nil
				}
				return Result{Objects: ignoreDegrade(values)}, nil
			}

		case outConverted:
			ticks[i] = out.tick
			if out.numeric {
				sawNumeric = true
				numericSlots = append(numericSlots, i)
			}
			if out.datetimeLike {
				sawDatetime = true
			}
		}
	}

	// Datetime values take precedence under coercion ambiguity: bare
	// numerics mixed with them are retroactively nulled.
	if policy == Coerce && sawDatetime && sawNumeric {
		for _, i := range numericSlots {
			ticks[i] = tick.NullTick
		}
	}

	if cfg.forceUTC {
		return Result{Ticks: ticks, Location: time.UTC}, nil
	}
	if z.cardinality() > 1 {
		// No single representative timezone exists; let each element keep
		// its own in the object representation.
		return convertObjects(values, policy, cfg)
	}
	if cfg.loc != nil {
		return Result{Ticks: ticks, Location: cfg.loc}, nil
	}
	return Result{Ticks: ticks, Location: z.soleLocation()}, nil
}

// ignoreDegrade is the null-normalized fallback for the ignore policy:
// true not-a-time entries become nil, everything else keeps its original,
// unconverted form. The asymmetry with coerce/raise (which stay internally
// consistent) is long-standing documented behavior.
func ignoreDegrade(values []scalar.Scalar) []any {
	objs := make([]any, len(values))
	for i, v := range values {
		if isNullLike(v) {
			continue
		}
		objs[i] = scalar.Unwrap(v)
	}
	return objs
}

func isNullLike(v scalar.Scalar) bool {
	switch val := v.(type) {
	case scalar.Null:
		return true
	case scalar.Float:
		return math.IsNaN(float64(val))
	case scalar.Int:
		return int64(val) == tick.NullTick
	case scalar.Timestamp:
		return int64(val) == tick.NullTick
	case scalar.String:
		return parse.IsNaT(string(val))
	}
	return false
}
