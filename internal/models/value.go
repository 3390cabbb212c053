package models

import (
	"math"
	"reflect"
	"strconv"
	"time"
)

// Value is an encodable SQL value. The set of implementations is closed: only
// the variants declared in this package satisfy it.
type Value interface {
	value()
}

type (
	// Null encodes to NULL.
	Null struct{}

	// Absent is the "not provided" marker. It encodes to NULL, but fields set
	// to Absent are skipped when building CASE updates.
	Absent struct{}

	// Raw is already valid SQL text. It is written verbatim, never escaped.
	Raw string

	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	String string

	// Date encodes to a quoted 'YYYY-MM-DD HH:mm:ss.sss' literal.
	Date time.Time

	// Bytes encodes to X'<hex>'.
	Bytes []byte

	// List encodes its elements joined by ", ". Elements that are themselves
	// lists are wrapped in parentheses, which yields the bulk insert tuple form.
	List []Value

	// Map encodes to "`key` = value" pairs in slice order.
	Map []Entry
)

// Entry is a single key of a Map.
type Entry struct {
	Key   string
	Value Value
}

func (Null) value()   {}
func (Absent) value() {}
func (Raw) value()    {}
func (Bool) value()   {}
func (Int) value()    {}
func (Uint) value()   {}
func (Float) value()  {}
func (String) value() {}
func (Date) value()   {}
func (Bytes) value()  {}
func (List) value()   {}
func (Map) value()    {}

// String returns the raw SQL text.
func (r Raw) String() string { return string(r) }

// RawPayload is the set of types accepted by RawSQL.
type RawPayload interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RawSQL wraps a string or a number as raw SQL. Numbers are rendered exactly as
// they would be when encoded as numeric literals.
func RawSQL[T RawPayload](v T) Raw {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Raw(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Raw(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		return Raw(FormatFloat(rv.Float(), 32))
	case reflect.Float64:
		return Raw(FormatFloat(rv.Float(), 64))
	default:
		return Raw(rv.String())
	}
}

// IsNaN reports whether v is a floating point NaN of any float kind. ValueOf
// rejects NaN, but a NaN identifier is still falsy rather than unsupported.
func IsNaN(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	}
	return false
}

// FormatFloat renders the shortest decimal that round-trips to f. Plain
// notation is used below 1e21, exponent notation above.
func FormatFloat(f float64, bitSize int) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	return strconv.FormatFloat(f, 'e', -1, bitSize)
}

// IsTruthy reports whether v would be accepted as a record identifier. Null,
// Absent, zero numbers, the empty string and false are falsy; everything else,
// including Raw, Bytes, List and Map, is truthy.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil, Null, Absent:
		return false
	case Bool:
		return bool(v)
	case Int:
		return v != 0
	case Uint:
		return v != 0
	case Float:
		return v != 0
	case String:
		return v != ""
	default:
		return true
	}
}
