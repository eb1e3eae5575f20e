// Package codec implements the Value Decoder and Value Encoder: the pair of
// functions that walk a wiretype.Cursor and a payload.Reader/Buffer in
// lockstep to translate between the wire format and the native value model
// in package value, the direct analogue of pyhost.c's doBuildArgs and
// buildResult dispatch tables.
package codec

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trinodb/trino-wasm-go/payload"
	"github.com/trinodb/trino-wasm-go/trinoerr"
	"github.com/trinodb/trino-wasm-go/value"
	"github.com/trinodb/trino-wasm-go/wiretype"
)

// ipv4MappedPrefix is the 12-byte prefix pyhost.c checks to tell an
// IPv4-mapped address apart from a genuine IPv6 address (::ffff:a.b.c.d).
var ipv4MappedPrefix = [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// Decode reads one value off data, consuming exactly the descriptor subtree
// desc is positioned at. The presence flag is read first; on absence, desc
// is still advanced past the whole subtree (spec.md I2) and value.Null{} is
// returned.
func Decode(desc *wiretype.Cursor, data *payload.Reader) (any, error) {
	present, err := data.Bool()
	if err != nil {
		return nil, err
	}
	if !present {
		if err := desc.Skip(); err != nil {
			return nil, err
		}
		return value.Null{}, nil
	}

	code, err := desc.ReadCode()
	if err != nil {
		return nil, err
	}

	switch code {
	case wiretype.Row:
		return decodeRow(desc, data)
	case wiretype.Array:
		return decodeArray(desc, data)
	case wiretype.Map:
		return decodeMap(desc, data)
	case wiretype.Boolean:
		return data.Bool()
	case wiretype.Bigint:
		return data.I64()
	case wiretype.Integer:
		v, err := data.I32()
		return int64(v), err
	case wiretype.Smallint:
		v, err := data.I16()
		return int64(v), err
	case wiretype.Tinyint:
		v, err := data.I8()
		return int64(v), err
	case wiretype.Double:
		return data.F64()
	case wiretype.Real:
		v, err := data.F32()
		return float64(v), err
	case wiretype.Decimal:
		return decodeDecimal(data)
	case wiretype.Varchar, wiretype.JSON:
		b, err := data.VarBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case wiretype.Varbinary:
		return data.VarBytes()
	case wiretype.Date:
		return decodeDate(data)
	case wiretype.Time:
		return decodeTime(data)
	case wiretype.TimeWithTimeZone:
		return decodeTimeWithTimeZone(data)
	case wiretype.Timestamp:
		return decodeTimestamp(data)
	case wiretype.TimestampWithTimeZone:
		return decodeTimestampWithTimeZone(data)
	case wiretype.IntervalYearToMonth:
		v, err := data.I32()
		return v, err
	case wiretype.IntervalDayToSecond:
		return decodeIntervalDayToSecond(data)
	case wiretype.UUID:
		return decodeUUID(data)
	case wiretype.IPAddress:
		return decodeIPAddress(data)
	default:
		return nil, fmt.Errorf("codec: unhandled type code %s", code)
	}
}

func decodeRow(desc *wiretype.Cursor, data *payload.Reader) (any, error) {
	count, err := desc.ReadCount()
	if err != nil {
		return nil, err
	}
	tup := make(value.Tuple, count)
	for i := int32(0); i < count; i++ {
		v, err := Decode(desc, data)
		if err != nil {
			return nil, err
		}
		tup[i] = v
	}
	return tup, nil
}

func decodeArray(desc *wiretype.Cursor, data *payload.Reader) (any, error) {
	count, err := data.I32()
	if err != nil {
		return nil, err
	}
	elemType := desc.Save()
	list := value.NewList(int(count))
	for i := int32(0); i < count; i++ {
		desc.RestoreTo(elemType)
		v, err := Decode(desc, data)
		if err != nil {
			return nil, err
		}
		list.Append(v)
	}
	if count == 0 {
		desc.RestoreTo(elemType)
		if err := desc.Skip(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func decodeMap(desc *wiretype.Cursor, data *payload.Reader) (any, error) {
	count, err := data.I32()
	if err != nil {
		return nil, err
	}
	keyType := desc.Save()
	dict := value.NewDict(int(count))
	for i := int32(0); i < count; i++ {
		desc.RestoreTo(keyType)
		k, err := Decode(desc, data)
		if err != nil {
			return nil, err
		}
		v, err := Decode(desc, data)
		if err != nil {
			return nil, err
		}
		dict.Set(k, v)
	}
	if count == 0 {
		desc.RestoreTo(keyType)
		if err := desc.Skip(); err != nil {
			return nil, err
		}
		if err := desc.Skip(); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

func decodeDecimal(data *payload.Reader) (any, error) {
	b, err := data.VarBytes()
	if err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return nil, &trinoerr.ImplementationError{Want: "DECIMAL", Got: "string", Cause: err}
	}
	return d, nil
}

func decodeDate(data *payload.Reader) (any, error) {
	days, err := data.I32()
	if err != nil {
		return nil, err
	}
	return time.Unix(int64(days)*86400, 0).UTC(), nil
}

func decodeTime(data *payload.Reader) (any, error) {
	micros, err := data.I64()
	if err != nil {
		return nil, err
	}
	return time.Duration(micros) * time.Microsecond, nil
}

func decodeTimeWithTimeZone(data *payload.Reader) (any, error) {
	micros, err := data.I64()
	if err != nil {
		return nil, err
	}
	offset, err := data.I16()
	if err != nil {
		return nil, err
	}
	return value.TimeTZ{Duration: time.Duration(micros) * time.Microsecond, OffsetMinutes: offset}, nil
}

// decodeTimestamp returns a naive wall-clock reading: the stored
// microsecond count carries no time zone, so it is read back as the same
// instant in UTC, standing in for "no tzinfo attached" (see Open Question
// OQ-a in DESIGN.md).
func decodeTimestamp(data *payload.Reader) (any, error) {
	micros, err := data.I64()
	if err != nil {
		return nil, err
	}
	return time.UnixMicro(micros).UTC(), nil
}

// decodeTimestampWithTimeZone reconstructs the wall-clock reading at the
// stored offset. The wire value is the UTC instant; attaching a
// time.FixedZone of the stored offset to that same instant makes every
// wall-clock accessor (Year, Hour, ...) report the local fields without any
// manual offset arithmetic.
func decodeTimestampWithTimeZone(data *payload.Reader) (any, error) {
	micros, err := data.I64()
	if err != nil {
		return nil, err
	}
	offset, err := data.I16()
	if err != nil {
		return nil, err
	}
	loc := time.FixedZone("", int(offset)*60)
	return time.UnixMicro(micros).In(loc), nil
}

func decodeIntervalDayToSecond(data *payload.Reader) (any, error) {
	millis, err := data.I64()
	if err != nil {
		return nil, err
	}
	return time.Duration(millis) * time.Millisecond, nil
}

func decodeUUID(data *payload.Reader) (any, error) {
	b, err := data.Bytes(16)
	if err != nil {
		return nil, err
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return nil, &trinoerr.ImplementationError{Want: "UUID", Got: "bytes", Cause: err}
	}
	return id, nil
}

func decodeIPAddress(data *payload.Reader) (any, error) {
	b, err := data.Bytes(16)
	if err != nil {
		return nil, err
	}
	if [12]byte(b[:12]) == ipv4MappedPrefix {
		return netip.AddrFrom4([4]byte(b[12:16])), nil
	}
	return netip.AddrFrom16([16]byte(b)), nil
}
