package codec

import (
	"fmt"
	"math"
	"net/netip"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trinodb/trino-wasm-go/payload"
	"github.com/trinodb/trino-wasm-go/trinoerr"
	"github.com/trinodb/trino-wasm-go/value"
	"github.com/trinodb/trino-wasm-go/wiretype"
)

// Encode writes one value to buf, consuming exactly the descriptor subtree
// desc is positioned at. A value.Null{} (or any value.IsNull value) writes
// the absent presence flag and skips the subtree without touching buf
// further, the encode-side mirror of Decode's null handling.
func Encode(desc *wiretype.Cursor, v any, buf *payload.Buffer) error {
	if value.IsNull(v) {
		buf.WriteBool(false)
		return desc.Skip()
	}

	code, err := desc.ReadCode()
	if err != nil {
		return err
	}
	buf.WriteBool(true)

	switch code {
	case wiretype.Row:
		return encodeRow(desc, v, buf)
	case wiretype.Array:
		return encodeArray(desc, v, buf)
	case wiretype.Map:
		return encodeMap(desc, v, buf)
	case wiretype.Boolean:
		b, ok := v.(bool)
		if !ok {
			return mismatch(code, v)
		}
		buf.WriteBool(b)
		return nil
	case wiretype.Bigint:
		i, ok := v.(int64)
		if !ok {
			return mismatch(code, v)
		}
		buf.WriteI64(i)
		return nil
	case wiretype.Integer:
		i, err := narrowTo32(code, v)
		if err != nil {
			return err
		}
		buf.WriteI32(i)
		return nil
	case wiretype.Smallint:
		i, err := narrowTo16(code, v)
		if err != nil {
			return err
		}
		buf.WriteI16(i)
		return nil
	case wiretype.Tinyint:
		i, err := narrowTo8(code, v)
		if err != nil {
			return err
		}
		buf.WriteI8(i)
		return nil
	case wiretype.Double:
		f, ok := v.(float64)
		if !ok {
			return mismatch(code, v)
		}
		buf.WriteF64(f)
		return nil
	case wiretype.Real:
		f, ok := v.(float64)
		if !ok {
			return mismatch(code, v)
		}
		buf.WriteF32(float32(f))
		return nil
	case wiretype.Decimal:
		d, ok := v.(decimal.Decimal)
		if !ok {
			return mismatch(code, v)
		}
		buf.WriteVarBytes([]byte(d.String()))
		return nil
	case wiretype.Varchar, wiretype.JSON:
		s, ok := v.(string)
		if !ok {
			return mismatch(code, v)
		}
		buf.WriteVarBytes([]byte(s))
		return nil
	case wiretype.Varbinary:
		b, ok := v.([]byte)
		if !ok {
			return mismatch(code, v)
		}
		buf.WriteVarBytes(b)
		return nil
	case wiretype.Date:
		return encodeDate(v, buf)
	case wiretype.Time:
		return encodeTime(v, buf)
	case wiretype.TimeWithTimeZone:
		return encodeTimeWithTimeZone(v, buf)
	case wiretype.Timestamp:
		return encodeTimestamp(v, buf)
	case wiretype.TimestampWithTimeZone:
		return encodeTimestampWithTimeZone(v, buf)
	case wiretype.IntervalYearToMonth:
		i, ok := v.(int32)
		if !ok {
			return mismatch(code, v)
		}
		buf.WriteI32(i)
		return nil
	case wiretype.IntervalDayToSecond:
		return encodeIntervalDayToSecond(v, buf)
	case wiretype.UUID:
		return encodeUUID(v, buf)
	case wiretype.IPAddress:
		return encodeIPAddress(v, buf)
	default:
		return fmt.Errorf("codec: unhandled type code %s", code)
	}
}

func mismatch(code wiretype.Code, v any) error {
	return &trinoerr.ImplementationError{Want: code.String(), Got: fmt.Sprintf("%T", v)}
}

func narrowTo32(code wiretype.Code, v any) (int32, error) {
	i, ok := v.(int64)
	if !ok {
		return 0, mismatch(code, v)
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, &trinoerr.RangeError{TypeName: code.String(), Value: strconv.FormatInt(i, 10)}
	}
	return int32(i), nil
}

func narrowTo16(code wiretype.Code, v any) (int16, error) {
	i, ok := v.(int64)
	if !ok {
		return 0, mismatch(code, v)
	}
	if i < math.MinInt16 || i > math.MaxInt16 {
		return 0, &trinoerr.RangeError{TypeName: code.String(), Value: strconv.FormatInt(i, 10)}
	}
	return int16(i), nil
}

func narrowTo8(code wiretype.Code, v any) (int8, error) {
	i, ok := v.(int64)
	if !ok {
		return 0, mismatch(code, v)
	}
	if i < math.MinInt8 || i > math.MaxInt8 {
		return 0, &trinoerr.RangeError{TypeName: code.String(), Value: strconv.FormatInt(i, 10)}
	}
	return int8(i), nil
}

func encodeRow(desc *wiretype.Cursor, v any, buf *payload.Buffer) error {
	count, err := desc.ReadCount()
	if err != nil {
		return err
	}
	tup, ok := v.(value.Tuple)
	if !ok {
		return mismatch(wiretype.Row, v)
	}
	if int32(len(tup)) != count {
		return &trinoerr.ImplementationError{
			Want: wiretype.Row.String(),
			Got:  fmt.Sprintf("Tuple of length %d, want %d", len(tup), count),
		}
	}
	for _, field := range tup {
		if err := Encode(desc, field, buf); err != nil {
			return err
		}
	}
	return nil
}

func encodeArray(desc *wiretype.Cursor, v any, buf *payload.Buffer) error {
	list, ok := v.(*value.List)
	if !ok {
		return mismatch(wiretype.Array, v)
	}
	buf.WriteI32(int32(list.Len())) //nolint:gosec
	elemType := desc.Save()
	for i := 0; i < list.Len(); i++ {
		desc.RestoreTo(elemType)
		if err := Encode(desc, list.At(i), buf); err != nil {
			return err
		}
	}
	if list.Len() == 0 {
		desc.RestoreTo(elemType)
		if err := desc.Skip(); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(desc *wiretype.Cursor, v any, buf *payload.Buffer) error {
	dict, ok := v.(*value.Dict)
	if !ok {
		return mismatch(wiretype.Map, v)
	}
	buf.WriteI32(int32(dict.Len())) //nolint:gosec
	keyType := desc.Save()
	var encErr error
	dict.Range(func(k, val any) bool {
		desc.RestoreTo(keyType)
		if err := Encode(desc, k, buf); err != nil {
			encErr = err
			return false
		}
		if err := Encode(desc, val, buf); err != nil {
			encErr = err
			return false
		}
		return true
	})
	if encErr != nil {
		return encErr
	}
	if dict.Len() == 0 {
		desc.RestoreTo(keyType)
		if err := desc.Skip(); err != nil {
			return err
		}
		if err := desc.Skip(); err != nil {
			return err
		}
	}
	return nil
}

// epoch is the DATE wire format's zero point.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

func encodeDate(v any, buf *payload.Buffer) error {
	t, ok := v.(time.Time)
	if !ok {
		return mismatch(wiretype.Date, v)
	}
	days := int32(floorDiv(int64(t.UTC().Sub(epoch)), int64(24*time.Hour))) //nolint:gosec
	buf.WriteI32(days)
	return nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func encodeTime(v any, buf *payload.Buffer) error {
	d, ok := v.(time.Duration)
	if !ok {
		return mismatch(wiretype.Time, v)
	}
	buf.WriteI64(d.Microseconds())
	return nil
}

func encodeTimeWithTimeZone(v any, buf *payload.Buffer) error {
	tz, ok := v.(value.TimeTZ)
	if !ok {
		return mismatch(wiretype.TimeWithTimeZone, v)
	}
	buf.WriteI64(tz.Duration.Microseconds())
	buf.WriteI16(tz.OffsetMinutes)
	return nil
}

// encodeTimestamp treats t's wall-clock fields (whatever zone they came
// from) as if they were UTC, the inverse of Decode's "attach UTC as a
// carrier for wall-clock fields" (Open Question OQ-a in DESIGN.md).
func encodeTimestamp(v any, buf *payload.Buffer) error {
	t, ok := v.(time.Time)
	if !ok {
		return mismatch(wiretype.Timestamp, v)
	}
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	buf.WriteI64(wall.UnixMicro())
	return nil
}

// encodeTimestampWithTimeZone writes the absolute instant t represents
// (independent of whatever *time.Location it carries) plus that location's
// current UTC offset in minutes.
func encodeTimestampWithTimeZone(v any, buf *payload.Buffer) error {
	t, ok := v.(time.Time)
	if !ok {
		return mismatch(wiretype.TimestampWithTimeZone, v)
	}
	_, offsetSeconds := t.Zone()
	buf.WriteI64(t.UnixMicro())
	buf.WriteI16(int16(offsetSeconds / 60)) //nolint:gosec
	return nil
}

// encodeIntervalDayToSecond rounds microseconds to the wire's millisecond
// resolution half-up, mirroring pyhost.c's "(micros + 500) / 1000" (see
// Open Question OQ-b in DESIGN.md).
func encodeIntervalDayToSecond(v any, buf *payload.Buffer) error {
	d, ok := v.(time.Duration)
	if !ok {
		return mismatch(wiretype.IntervalDayToSecond, v)
	}
	micros := d.Microseconds()
	millis := (micros + 500) / 1000
	buf.WriteI64(millis)
	return nil
}

func encodeUUID(v any, buf *payload.Buffer) error {
	id, ok := v.(uuid.UUID)
	if !ok {
		return mismatch(wiretype.UUID, v)
	}
	buf.WriteBytes(id[:])
	return nil
}

func encodeIPAddress(v any, buf *payload.Buffer) error {
	addr, ok := v.(netip.Addr)
	if !ok {
		return mismatch(wiretype.IPAddress, v)
	}
	if addr.Is4() {
		a4 := addr.As4()
		var out [16]byte
		copy(out[:12], ipv4MappedPrefix[:])
		copy(out[12:], a4[:])
		buf.WriteBytes(out[:])
		return nil
	}
	a16 := addr.As16()
	buf.WriteBytes(a16[:])
	return nil
}
