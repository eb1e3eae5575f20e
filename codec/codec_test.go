package codec

import (
	"net/netip"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinodb/trino-wasm-go/payload"
	"github.com/trinodb/trino-wasm-go/trinoerr"
	"github.com/trinodb/trino-wasm-go/value"
	"github.com/trinodb/trino-wasm-go/wiretype"
)

func appendCode(d []byte, code wiretype.Code) []byte {
	return appendI32(d, int32(code))
}

func appendI32(d []byte, v int32) []byte {
	return append(d, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// roundTrip encodes v against desc into a fresh buffer, then decodes the
// result against a fresh cursor over the same descriptor bytes.
func roundTrip(t *testing.T, descBytes []byte, v any) any {
	t.Helper()
	buf := payload.NewBuffer()
	require.NoError(t, Encode(wiretype.NewCursor(descBytes), v, buf))
	buf.FillLengthPrefix()

	reader := payload.NewReader(buf.Bytes()[4:])
	got, err := Decode(wiretype.NewCursor(descBytes), reader)
	require.NoError(t, err)
	return got
}

// TestLiteralZeroDescriptorIsRow pins the wire encoding of ROW to the
// engine's ABI constant (0), independent of the wiretype.Row Go constant:
// a descriptor of four zero bytes (little-endian int32 0) followed by a
// zero field count must decode as an empty ROW, not ErrUnknownType.
func TestLiteralZeroDescriptorIsRow(t *testing.T) {
	descBytes := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	buf := payload.NewBuffer()
	buf.WriteBool(true)
	buf.FillLengthPrefix()

	reader := payload.NewReader(buf.Bytes()[4:])
	got, err := Decode(wiretype.NewCursor(descBytes), reader)
	require.NoError(t, err)
	assert.Equal(t, value.Tuple{}, got)
}

func TestRoundTripScalars(t *testing.T) {
	cases := []struct {
		name string
		code wiretype.Code
		in   any
	}{
		{"boolean", wiretype.Boolean, true},
		{"bigint", wiretype.Bigint, int64(-9001)},
		{"integer", wiretype.Integer, int64(42)},
		{"smallint", wiretype.Smallint, int64(-7)},
		{"tinyint", wiretype.Tinyint, int64(3)},
		{"double", wiretype.Double, 3.14159},
		{"real", wiretype.Real, 1.5},
		{"varchar", wiretype.Varchar, "hello"},
		{"json", wiretype.JSON, `{"a":1}`},
		{"varbinary", wiretype.Varbinary, []byte{1, 2, 3}},
		{"interval_year_to_month", wiretype.IntervalYearToMonth, int32(14)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc := appendCode(nil, tc.code)
			got := roundTrip(t, desc, tc.in)
			assert.Equal(t, tc.in, got)
		})
	}
}

func TestRoundTripDecimal(t *testing.T) {
	desc := appendCode(nil, wiretype.Decimal)
	in := decimal.RequireFromString("12345.6700")
	got := roundTrip(t, desc, in)
	assert.True(t, in.Equal(got.(decimal.Decimal)))
}

func TestRoundTripUUID(t *testing.T) {
	desc := appendCode(nil, wiretype.UUID)
	in := uuid.New()
	got := roundTrip(t, desc, in)
	assert.Equal(t, in, got)
}

func TestRoundTripDate(t *testing.T) {
	desc := appendCode(nil, wiretype.Date)
	in := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	got := roundTrip(t, desc, in)
	assert.True(t, in.Equal(got.(time.Time)))
}

func TestRoundTripDateBeforeEpoch(t *testing.T) {
	desc := appendCode(nil, wiretype.Date)
	in := time.Date(1955, time.November, 5, 0, 0, 0, 0, time.UTC)
	got := roundTrip(t, desc, in)
	assert.True(t, in.Equal(got.(time.Time)))
}

func TestRoundTripTime(t *testing.T) {
	desc := appendCode(nil, wiretype.Time)
	in := 12*time.Hour + 30*time.Minute + 5*time.Second
	got := roundTrip(t, desc, in)
	assert.Equal(t, in, got)
}

func TestRoundTripTimeWithTimeZone(t *testing.T) {
	desc := appendCode(nil, wiretype.TimeWithTimeZone)
	in := value.TimeTZ{Duration: 6 * time.Hour, OffsetMinutes: -300}
	got := roundTrip(t, desc, in)
	assert.Equal(t, in, got)
}

func TestRoundTripTimestamp(t *testing.T) {
	desc := appendCode(nil, wiretype.Timestamp)
	in := time.Date(2024, time.March, 1, 10, 15, 30, 0, time.UTC)
	got := roundTrip(t, desc, in)
	assert.True(t, in.Equal(got.(time.Time)))
}

func TestRoundTripTimestampWithTimeZone(t *testing.T) {
	desc := appendCode(nil, wiretype.TimestampWithTimeZone)
	loc := time.FixedZone("", -8*60*60)
	in := time.Date(2024, time.March, 1, 10, 15, 30, 0, loc)
	got := roundTrip(t, desc, in)
	gotT := got.(time.Time)
	assert.True(t, in.Equal(gotT))
	_, gotOffset := gotT.Zone()
	assert.Equal(t, -8*60*60, gotOffset)
}

func TestRoundTripIntervalDayToSecond(t *testing.T) {
	desc := appendCode(nil, wiretype.IntervalDayToSecond)
	in := 3*time.Hour + 500*time.Millisecond
	got := roundTrip(t, desc, in)
	assert.Equal(t, in, got)
}

func TestIntervalDayToSecondRoundsHalfUp(t *testing.T) {
	desc := appendCode(nil, wiretype.IntervalDayToSecond)
	// 1500 microseconds rounds up to 2 milliseconds, matching pyhost.c's
	// (micros + 500) / 1000.
	in := 1500 * time.Microsecond
	got := roundTrip(t, desc, in)
	assert.Equal(t, 2*time.Millisecond, got)
}

func TestRoundTripIPv4Mapped(t *testing.T) {
	desc := appendCode(nil, wiretype.IPAddress)
	in := netip.MustParseAddr("192.168.1.1")
	got := roundTrip(t, desc, in)
	gotAddr := got.(netip.Addr)
	assert.True(t, gotAddr.Is4())
	assert.Equal(t, in, gotAddr)
}

func TestRoundTripIPv6(t *testing.T) {
	desc := appendCode(nil, wiretype.IPAddress)
	in := netip.MustParseAddr("2001:db8::1")
	got := roundTrip(t, desc, in)
	gotAddr := got.(netip.Addr)
	assert.False(t, gotAddr.Is4())
	assert.Equal(t, in, gotAddr)
}

func TestNullPropagatesAndSkipsSubtree(t *testing.T) {
	var desc []byte
	desc = appendCode(desc, wiretype.Row)
	desc = appendI32(desc, 2)
	desc = appendCode(desc, wiretype.Bigint)
	desc = appendCode(desc, wiretype.Varchar)

	buf := payload.NewBuffer()
	c := wiretype.NewCursor(desc)
	require.NoError(t, Encode(c, value.Null{}, buf))
	assert.Equal(t, len(desc), c.Pos())

	reader := payload.NewReader(buf.Bytes()[4:])
	got, err := Decode(wiretype.NewCursor(desc), reader)
	require.NoError(t, err)
	assert.True(t, value.IsNull(got))
}

func TestEmptyArrayStillAdvancesDescriptor(t *testing.T) {
	var desc []byte
	desc = appendCode(desc, wiretype.Array)
	desc = appendCode(desc, wiretype.Integer)

	list := value.NewList(0)
	buf := payload.NewBuffer()
	c := wiretype.NewCursor(desc)
	require.NoError(t, Encode(c, list, buf))
	assert.Equal(t, len(desc), c.Pos())

	reader := payload.NewReader(buf.Bytes()[4:])
	got, err := Decode(wiretype.NewCursor(desc), reader)
	require.NoError(t, err)
	assert.Equal(t, 0, got.(*value.List).Len())
}

func TestEmptyMapStillAdvancesDescriptor(t *testing.T) {
	var desc []byte
	desc = appendCode(desc, wiretype.Map)
	desc = appendCode(desc, wiretype.Varchar)
	desc = appendCode(desc, wiretype.Bigint)

	dict := value.NewDict(0)
	buf := payload.NewBuffer()
	c := wiretype.NewCursor(desc)
	require.NoError(t, Encode(c, dict, buf))
	assert.Equal(t, len(desc), c.Pos())
}

func TestRoundTripNestedRowMapArrayRow(t *testing.T) {
	// ROW(2, MAP(VARCHAR, ARRAY(ROW(2, BIGINT, BOOLEAN))), INTEGER)
	var desc []byte
	desc = appendCode(desc, wiretype.Row)
	desc = appendI32(desc, 2)
	desc = appendCode(desc, wiretype.Map)
	desc = appendCode(desc, wiretype.Varchar)
	desc = appendCode(desc, wiretype.Array)
	desc = appendCode(desc, wiretype.Row)
	desc = appendI32(desc, 2)
	desc = appendCode(desc, wiretype.Bigint)
	desc = appendCode(desc, wiretype.Boolean)
	desc = appendCode(desc, wiretype.Integer)

	innerList := value.NewList(1)
	innerList.Append(value.Tuple{int64(7), true})
	dict := value.NewDict(1)
	dict.Set("k", innerList)
	in := value.Tuple{dict, int64(99)}

	got := roundTrip(t, desc, in)
	outer, ok := got.(value.Tuple)
	require.True(t, ok)
	require.Len(t, outer, 2)
	assert.Equal(t, int64(99), outer[1])

	outDict, ok := outer[0].(*value.Dict)
	require.True(t, ok)
	assert.Equal(t, 1, outDict.Len())
	v, ok := outDict.Get("k")
	require.True(t, ok)
	outList := v.(*value.List)
	require.Equal(t, 1, outList.Len())
	assert.Equal(t, value.Tuple{int64(7), true}, outList.At(0))
}

func TestEncodeIntegerOutOfRangeIsRangeError(t *testing.T) {
	desc := appendCode(nil, wiretype.Tinyint)
	buf := payload.NewBuffer()
	err := Encode(wiretype.NewCursor(desc), int64(200), buf)
	var rangeErr *trinoerr.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "TINYINT", rangeErr.TypeName)
}

func TestEncodeTypeMismatchIsImplementationError(t *testing.T) {
	desc := appendCode(nil, wiretype.Bigint)
	buf := payload.NewBuffer()
	err := Encode(wiretype.NewCursor(desc), "not an int", buf)
	var implErr *trinoerr.ImplementationError
	require.ErrorAs(t, err, &implErr)
	assert.Equal(t, "BIGINT", implErr.Want)
}

func TestEncodeRowLengthMismatchIsImplementationError(t *testing.T) {
	var desc []byte
	desc = appendCode(desc, wiretype.Row)
	desc = appendI32(desc, 2)
	desc = appendCode(desc, wiretype.Bigint)
	desc = appendCode(desc, wiretype.Boolean)

	buf := payload.NewBuffer()
	err := Encode(wiretype.NewCursor(desc), value.Tuple{int64(1)}, buf)
	var implErr *trinoerr.ImplementationError
	require.ErrorAs(t, err, &implErr)
}

func TestDecodeUnknownTypeCodeIsFatal(t *testing.T) {
	desc := appendI32(nil, 999)
	buf := payload.NewBuffer()
	buf.WriteBool(true)
	buf.FillLengthPrefix()
	reader := payload.NewReader(buf.Bytes()[4:])
	_, err := Decode(wiretype.NewCursor(desc), reader)
	require.ErrorIs(t, err, wiretype.ErrUnknownType)
}
