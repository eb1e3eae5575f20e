// Package wiretype implements the Type Descriptor Walker: a cursor over the
// engine's flat, prefix-encoded type descriptor. The descriptor is static
// for the lifetime of the guest (it describes the function's signature, not
// individual row values) and is re-walked once per row in lockstep with the
// value payload (see package payload).
package wiretype

import "fmt"

// Code is one of the closed set of Trino wire type codes. Each is
// transmitted as a 32-bit little-endian integer, optionally followed by
// operand subtrees (ROW's field count and fields, ARRAY's element type,
// MAP's key and value types).
type Code int32

const (
	Row Code = iota
	Array
	Map
	Boolean
	Bigint
	Integer
	Smallint
	Tinyint
	Double
	Real
	Decimal
	Varchar
	Varbinary
	Date
	Time
	TimeWithTimeZone
	Timestamp
	TimestampWithTimeZone
	IntervalYearToMonth
	IntervalDayToSecond
	JSON
	UUID
	IPAddress
)

func (c Code) String() string {
	switch c {
	case Row:
		return "ROW"
	case Array:
		return "ARRAY"
	case Map:
		return "MAP"
	case Boolean:
		return "BOOLEAN"
	case Bigint:
		return "BIGINT"
	case Integer:
		return "INTEGER"
	case Smallint:
		return "SMALLINT"
	case Tinyint:
		return "TINYINT"
	case Double:
		return "DOUBLE"
	case Real:
		return "REAL"
	case Decimal:
		return "DECIMAL"
	case Varchar:
		return "VARCHAR"
	case Varbinary:
		return "VARBINARY"
	case Date:
		return "DATE"
	case Time:
		return "TIME"
	case TimeWithTimeZone:
		return "TIME WITH TIME ZONE"
	case Timestamp:
		return "TIMESTAMP"
	case TimestampWithTimeZone:
		return "TIMESTAMP WITH TIME ZONE"
	case IntervalYearToMonth:
		return "INTERVAL YEAR TO MONTH"
	case IntervalDayToSecond:
		return "INTERVAL DAY TO SECOND"
	case JSON:
		return "JSON"
	case UUID:
		return "UUID"
	case IPAddress:
		return "IPADDRESS"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int32(c))
	}
}

// isScalar reports whether c has no operand subtrees, i.e. skipping it
// consumes nothing beyond the code itself.
func (c Code) isScalar() bool {
	switch c {
	case Boolean, Bigint, Integer, Smallint, Tinyint, Double, Real, Decimal,
		Varchar, Varbinary, Date, Time, TimeWithTimeZone, Timestamp,
		TimestampWithTimeZone, IntervalYearToMonth, IntervalDayToSecond,
		JSON, UUID, IPAddress:
		return true
	default:
		return false
	}
}
