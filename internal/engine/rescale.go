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

// rescaleDegrade is the ignore-mode degrade path of the unit rescaler.
// Unlike the general object fallback it wraps every convertible value as a
// native timestamp; its input domain at this stage is only null, numeric,
// and numeric-string originals, so nothing wider is handled. Elements that
// overflow or fail to parse stay in their original form.
func rescaleDegrade(values []scalar.Scalar, cfg config) []any {
	m := cfg.unit.Multiplier()
	objs := make([]any, len(values))

	for i, v := range values {
		switch val := v.(type) {
		case scalar.Null:
			// nil already

		case scalar.Int:
			if int64(val) == tick.NullTick {
				continue
			}
			if t, err := scaleInt(int64(val), m); err == nil {
				objs[i] = wrapTimestamp(t)
			} else {
				objs[i] = int64(val)
			}

		case scalar.Float:
			if math.IsNaN(float64(val)) {
				continue
			}
			if t, err := scaleFloat(float64(val), m); err == nil {
				objs[i] = wrapTimestamp(t)
			} else {
				objs[i] = float64(val)
			}

		case scalar.String:
			objs[i] = rescaleString(string(val), m)

		default:
			objs[i] = scalar.Unwrap(v)
		}
	}
	return objs
}

func rescaleString(s string, m int64) any {
	if parse.IsNaT(s) {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	if iv, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		if t, serr := scaleInt(iv, m); serr == nil {
			return wrapTimestamp(t)
		}
		return s
	}
	if fv, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(fv) {
			return nil
		}
		if t, serr := scaleFloat(fv, m); serr == nil {
			return wrapTimestamp(t)
		}
	}
	return s
}

func wrapTimestamp(t int64) time.Time {
	return time.Unix(0, t).UTC()
}
