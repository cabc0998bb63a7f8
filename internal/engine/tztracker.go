package engine

import (
	"fmt"
	"time"
)

// zoneTracker accumulates the distinct UTC offsets observed during one array
// pass, plus a marker for naive elements. Only string- and native-datetime-
// sourced elements contribute; dates and bare numerics are offset-agnostic.
//
// Cardinality exactly one at pass end permits a shared representative
// timezone; any other nonzero cardinality forces the object path.
type zoneTracker struct {
	offsets map[int]struct{}
	naive   bool
}

func newZoneTracker() *zoneTracker {
	return &zoneTracker{offsets: make(map[int]struct{})}
}

// recordOffset notes a fixed offset in seconds east of UTC.
func (z *zoneTracker) recordOffset(off int) {
	z.offsets[off] = struct{}{}
}

// recordNaive notes a zone-less contribution.
func (z *zoneTracker) recordNaive() {
	z.naive = true
}

// cardinality returns the number of distinct entries (offsets plus the naive
// marker if present).
func (z *zoneTracker) cardinality() int {
	n := len(z.offsets)
	if z.naive {
		n++
	}
	return n
}

// soleLocation returns the representative location when cardinality is
// exactly one. A sole naive marker yields nil (no timezone).
func (z *zoneTracker) soleLocation() *time.Location {
	if z.naive || len(z.offsets) != 1 {
		return nil
	}
	for off := range z.offsets {
		return fixedZone(off)
	}
	return nil
}

// fixedZone builds a location named like "+02:00" for a seconds offset.
func fixedZone(off int) *time.Location {
	if off == 0 {
		return time.UTC
	}
	mins := off / 60
	return time.FixedZone(fmt.Sprintf("%+03d:%02d", mins/60, abs(mins%60)), off)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
