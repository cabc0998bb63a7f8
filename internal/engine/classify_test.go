package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/quarrow/tsarray/internal/engine"
	"github.com/quarrow/tsarray/internal/scalar"
	"github.com/quarrow/tsarray/internal/testutil"
	"github.com/quarrow/tsarray/internal/tick"
)

// =============================================================================
// Relative tokens against the injected clock
// =============================================================================

func TestConvert_Now_ForceUTCVsNaive(t *testing.T) {
	// Clock fixed at 10:00 wall time in a +01:00 zone (09:00 UTC).
	clk := testutil.At(2024, time.March, 15, 10, 0, 0, 123456789, time.FixedZone("+01:00", 3600))

	utcRes, err := Convert([]scalar.Scalar{scalar.String("now")}, Raise,
		WithClock(clk), WithForceUTC(true))
	require.NoError(t, err)

	naiveRes, err := Convert([]scalar.Scalar{scalar.String("now")}, Raise,
		WithClock(clk))
	require.NoError(t, err)

	utcInstant := clk.T.UnixNano()
	assert.Equal(t, utcInstant, utcRes.Ticks[0])
	// Naive "now" reads the wall clock: one hour ahead of the UTC instant.
	assert.Equal(t, utcInstant+3600*1e9, naiveRes.Ticks[0])
	assert.NotEqual(t, utcRes.Ticks[0], naiveRes.Ticks[0])

	// Both carry the clock's nanosecond precision.
	assert.Equal(t, int64(123456789), utcRes.Ticks[0]%1e9)
}

func TestConvert_Today_TruncatesToMidnight(t *testing.T) {
	clk := testutil.At(2024, time.March, 15, 22, 45, 1, 5, time.UTC)

	res, err := Convert([]scalar.Scalar{scalar.String("today")}, Raise,
		WithClock(clk), WithForceUTC(true))
	require.NoError(t, err)

	want, err := tick.Midnight(2024, time.March, 15)
	require.NoError(t, err)
	assert.Equal(t, want, res.Ticks[0])
}

func TestConvert_NowIsExactToken(t *testing.T) {
	// "Now" is not the token; it goes through the ordinary parse ladder.
	_, err := Convert([]scalar.Scalar{scalar.String("Now ")}, Raise)
	assert.Error(t, err)
}

// =============================================================================
// Strict ISO mode
// =============================================================================

func TestConvert_StrictISO_RejectsNumerics(t *testing.T) {
	_, err := Convert([]scalar.Scalar{scalar.Int(5)}, Raise, WithStrictISO(true))
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	res, err := Convert([]scalar.Scalar{scalar.Int(5)}, Coerce, WithStrictISO(true))
	require.NoError(t, err)
	assert.Equal(t, tick.NullTick, res.Ticks[0])
}

func TestConvert_StrictISO_RejectsFuzzyStrings(t *testing.T) {
	_, err := Convert([]scalar.Scalar{scalar.String("Jan 2, 2024")}, Raise, WithStrictISO(true))
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	// Strict ISO strings still convert.
	res, err := Convert([]scalar.Scalar{scalar.String("2024-01-02")}, Raise, WithStrictISO(true))
	require.NoError(t, err)
	assert.Equal(t, int64(1704153600)*1e9, res.Ticks[0])
}

// =============================================================================
// Explicit layout
// =============================================================================

func TestConvert_ExplicitLayout(t *testing.T) {
	res, err := Convert([]scalar.Scalar{scalar.String("2024/03/05")}, Raise,
		WithFormat("2006/01/02"))
	require.NoError(t, err)
	assert.Equal(t, int64(1709596800)*1e9, res.Ticks[0])
}

func TestConvert_ExplicitLayout_MissDoesNotFallThrough(t *testing.T) {
	// A layout miss is a parse failure; the fuzzy parser is not consulted
	// even though the string would fuzzy-parse.
	_, err := Convert([]scalar.Scalar{scalar.String("Jan 2, 2024")}, Raise,
		WithFormat("2006/01/02"))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestConvert_ExplicitLayoutWithZone_TracksOffset(t *testing.T) {
	res, err := Convert([]scalar.Scalar{
		scalar.String("2024-03-05 10:00:00 +02:00"),
	}, Raise, WithFormat("2006-01-02 15:04:05 -07:00"))
	require.NoError(t, err)
	require.NotNil(t, res.Location)
	_, off := time.Unix(0, res.Ticks[0]).In(res.Location).Zone()
	assert.Equal(t, 7200, off)
}

// =============================================================================
// Day-first / year-first hints
// =============================================================================

func TestConvert_DayFirst(t *testing.T) {
	res, err := Convert([]scalar.Scalar{scalar.String("01/02/2024")}, Raise,
		WithDayFirst(true))
	require.NoError(t, err)
	f := tick.Decode(res.Ticks[0])
	assert.Equal(t, time.February, f.Month)
	assert.Equal(t, 1, f.Day)
}

func TestConvert_YearFirst(t *testing.T) {
	res, err := Convert([]scalar.Scalar{scalar.String("10/11/12")}, Raise,
		WithYearFirst(true))
	require.NoError(t, err)
	f := tick.Decode(res.Ticks[0])
	assert.Equal(t, 2010, f.Year)
	assert.Equal(t, time.November, f.Month)
	assert.Equal(t, 12, f.Day)
}

// =============================================================================
// Timestamps and datetimes
// =============================================================================

func TestConvert_TimestampPassthrough(t *testing.T) {
	res, err := Convert([]scalar.Scalar{scalar.Timestamp(42)}, Raise)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.Ticks[0])
}

func TestConvert_AwareDatetime(t *testing.T) {
	loc := time.FixedZone("+02:00", 7200)
	dt := scalar.DateTime{
		Time:  time.Date(2024, time.January, 1, 0, 0, 0, 0, loc),
		Aware: true,
	}
	res, err := Convert([]scalar.Scalar{dt}, Raise)
	require.NoError(t, err)
	assert.Equal(t, int64(1704067200-7200)*1e9, res.Ticks[0])
	require.NotNil(t, res.Location)
}

func TestConvert_DateIsMidnight(t *testing.T) {
	res, err := Convert([]scalar.Scalar{
		scalar.Date{Year: 2024, Month: time.January, Day: 2},
	}, Raise)
	require.NoError(t, err)
	assert.Equal(t, int64(1704153600)*1e9, res.Ticks[0])
}

// =============================================================================
// ConvertWithUnit
// =============================================================================

func TestConvertWithUnit_Seconds(t *testing.T) {
	res, err := ConvertWithUnit([]scalar.Scalar{
		scalar.Int(1704067200),
		scalar.Float(1.5),
		scalar.String("2"),
	}, tick.Second, Raise)
	require.NoError(t, err)
	assert.Equal(t, int64(1704067200)*1e9, res.Ticks[0])
	assert.Equal(t, int64(1500000000), res.Ticks[1])
	assert.Equal(t, int64(2000000000), res.Ticks[2])
}

func TestConvertWithUnit_Milliseconds(t *testing.T) {
	res, err := ConvertWithUnit([]scalar.Scalar{scalar.Int(1500)}, tick.Millisecond, Raise)
	require.NoError(t, err)
	assert.Equal(t, int64(1500)*1e6, res.Ticks[0])
}

func TestConvertWithUnit_NonNumericString(t *testing.T) {
	_, err := ConvertWithUnit([]scalar.Scalar{scalar.String("abc")}, tick.Second, Raise)
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

// =============================================================================
// ConvertInLocation
// =============================================================================

func TestConvertInLocation_ShiftsWallClockSources(t *testing.T) {
	loc := time.FixedZone("+02:00", 7200)
	res, err := ConvertInLocation([]scalar.Scalar{
		scalar.String("2024-01-01 00:00:00"),
	}, loc, Raise)
	require.NoError(t, err)
	require.False(t, res.IsObject())
	assert.Equal(t, int64(1704067200-7200)*1e9, res.Ticks[0])
	assert.Equal(t, loc, res.Location)
}

func TestConvertInLocation_EpochSourcesNotShifted(t *testing.T) {
	loc := time.FixedZone("+02:00", 7200)
	res, err := ConvertInLocation([]scalar.Scalar{
		scalar.Int(1000),
		scalar.Timestamp(2000),
	}, loc, Raise)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.Ticks[0])
	assert.Equal(t, int64(2000), res.Ticks[1])
}

func TestConvertInLocation_OffsetStringKeepsOwnOffset(t *testing.T) {
	loc := time.FixedZone("+02:00", 7200)
	res, err := ConvertInLocation([]scalar.Scalar{
		scalar.String("2024-01-01 00:00:00+05:00"),
	}, loc, Raise)
	require.NoError(t, err)
	require.False(t, res.IsObject())
	assert.Equal(t, int64(1704067200-18000)*1e9, res.Ticks[0])
}
