package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/quarrow/tsarray/internal/tick"
)

// FuzzyResult is the outcome of a best-effort calendar-string parse.
type FuzzyResult struct {
	Fields    tick.Fields
	HasOffset bool
	Offset    int // seconds east of UTC, valid when HasOffset
}

var (
	// zoneMarker matches a trailing Z / ±HH[:]MM offset or a UTC/GMT name,
	// used to decide whether a fuzzy parse contributes to zone consensus.
	// dateparse returns UTC for offset-less strings, so the location alone
	// cannot distinguish "no zone" from "explicit +00:00".
	zoneMarker = regexp.MustCompile(`(?i)(z|[+-]\d{2}:?\d{2}|\bUTC\b|\bGMT\b)\s*$`)

	// twoDigitTriple matches YY<sep>NN<sep>NN at the front of a string,
	// the only shape where the year-first hint changes the reading.
	twoDigitTriple = regexp.MustCompile(`^(\d{2})([-/.])(\d{1,2})[-/.](\d{1,2})(.*)$`)
)

// Fuzzy parses s with the best-effort calendar parser, honoring the
// day-first and year-first hints. The returned offset is populated only
// when the string itself carried a zone marker.
func Fuzzy(s string, dayFirst, yearFirst bool) (FuzzyResult, error) {
	var r FuzzyResult

	in := s
	if yearFirst {
		in = applyYearFirst(in)
	}

	t, err := dateparse.ParseAny(in,
		dateparse.PreferMonthFirst(!dayFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return r, fmt.Errorf("unparseable datetime string %q: %w", s, err)
	}

	r.Fields = tick.FromTime(t)
	if zoneMarker.MatchString(strings.TrimSpace(s)) {
		_, off := t.Zone()
		r.HasOffset = true
		r.Offset = off
	}
	return r, nil
}

// applyYearFirst rewrites a leading two-digit YY?NN?NN triple into four-digit
// ISO order so the downstream parser reads the first number as the year.
// Two-digit years 00-68 map to 2000-2068, 69-99 to 1969-1999.
func applyYearFirst(s string) string {
	m := twoDigitTriple.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	yy := (int(m[1][0]-'0'))*10 + int(m[1][1]-'0')
	century := 2000
	if yy >= 69 {
		century = 1900
	}
	return fmt.Sprintf("%04d-%s-%s%s", century+yy, pad2(m[3]), pad2(m[4]), m[5])
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
