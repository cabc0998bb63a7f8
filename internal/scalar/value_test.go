package scalar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny_KnownKinds(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, Null{}, FromAny(nil))
	assert.Equal(t, Int(5), FromAny(5))
	assert.Equal(t, Int(5), FromAny(int64(5)))
	assert.Equal(t, Float(1.5), FromAny(1.5))
	assert.Equal(t, String("2024-01-01"), FromAny("2024-01-01"))
	assert.Equal(t, DateTime{Time: now, Aware: true}, FromAny(now))
}

func TestFromAny_PassthroughScalar(t *testing.T) {
	s := Timestamp(42)
	assert.Equal(t, s, FromAny(s))
}

func TestFromAny_Other(t *testing.T) {
	got := FromAny(struct{ X int }{1})
	_, ok := got.(Other)
	assert.True(t, ok, "unknown types must wrap in Other")
}

func TestUnwrap(t *testing.T) {
	assert.Nil(t, Unwrap(Null{}))
	assert.Equal(t, int64(7), Unwrap(Int(7)))
	assert.Equal(t, 2.5, Unwrap(Float(2.5)))
	assert.Equal(t, "x", Unwrap(String("x")))
	assert.Equal(t,
		time.Date(2020, time.May, 4, 0, 0, 0, 0, time.UTC),
		Unwrap(Date{Year: 2020, Month: time.May, Day: 4}))
}

func TestRender(t *testing.T) {
	assert.Equal(t, "null", Render(Null{}))
	assert.Equal(t, "5", Render(Int(5)))
	assert.Equal(t, `"oops"`, Render(String("oops")))
	assert.Equal(t, "2020-05-04", Render(Date{Year: 2020, Month: time.May, Day: 4}))
}

func TestDecodeJSONArray_Heterogeneous(t *testing.T) {
	got, err := DecodeJSONArray([]byte(`[null, "2024-01-01", 5, 1.5, true]`))
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, Null{}, got[0])
	assert.Equal(t, String("2024-01-01"), got[1])
	assert.Equal(t, Int(5), got[2])
	assert.Equal(t, Float(1.5), got[3])
	assert.Equal(t, Other{Value: true}, got[4])
}

func TestDecodeJSONArray_BigIntegerBecomesFloat(t *testing.T) {
	// Integer literals beyond int64 keep their float form so overflow
	// handling sees them.
	got, err := DecodeJSONArray([]byte(`[99999999999999999999]`))
	require.NoError(t, err)
	_, ok := got[0].(Float)
	assert.True(t, ok)
}

func TestDecodeJSONArray_NotAnArray(t *testing.T) {
	_, err := DecodeJSONArray([]byte(`{"a":1}`))
	assert.Error(t, err)
}

func TestDecodeJSONArray_ExponentIsFloat(t *testing.T) {
	got, err := DecodeJSONArray([]byte(`[1e3]`))
	require.NoError(t, err)
	assert.Equal(t, Float(1000), got[0])
}
