package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// ValueOf converts an ordinary Go value into a Value.
//
// Supported inputs: nil, any Value, bool, every integer and float kind, string,
// []byte, time.Time, Record, slices and arrays (converted element-wise), maps
// with string keys (keys sorted, since Go maps carry no insertion order),
// pointers (nil is NULL, otherwise dereferenced) and driver.Valuer. Anything
// else fails with ErrUnsupportedType.
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		if reflect.ValueOf(v).Kind() == reflect.Pointer {
			return reflectValueOf(reflect.ValueOf(v))
		}
		if f, ok := v.(Float); ok {
			return checkFloat(float64(f))
		}
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return Uint(v), nil
	case uint8:
		return Uint(v), nil
	case uint16:
		return Uint(v), nil
	case uint32:
		return Uint(v), nil
	case uint64:
		return Uint(v), nil
	case float32:
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
		return checkFloat(f)
	case float64:
		return checkFloat(v)
	case string:
		return String(v), nil
	case []byte:
		return Bytes(v), nil
	case time.Time:
		return Date(v), nil
	case *time.Time:
		if v == nil {
			return Null{}, nil
		}
		return Date(*v), nil
	case Record:
		return v.toMap()
	case []any:
		return listOf(len(v), func(i int) any { return v[i] })
	case [][]any:
		return listOf(len(v), func(i int) any { return v[i] })
	case []string:
		return listOf(len(v), func(i int) any { return v[i] })
	case []int:
		return listOf(len(v), func(i int) any { return v[i] })
	case []int64:
		return listOf(len(v), func(i int) any { return v[i] })
	case map[string]any:
		return mapOf(reflect.ValueOf(v))
	case driver.Valuer:
		return valuerOf(v)
	}
	return reflectValueOf(reflect.ValueOf(v))
}

func checkFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, unsupported(f, "non-finite number")
	}
	return Float(f), nil
}

func listOf(n int, at func(int) any) (Value, error) {
	out := make(List, 0, n)
	for i := 0; i < n; i++ {
		val, err := ValueOf(at(i))
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

func mapOf(rv reflect.Value) (Value, error) {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	out := make(Map, 0, len(keys))
	for _, key := range keys {
		val, err := ValueOf(rv.MapIndex(key).Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: key.String(), Value: val})
	}
	return out, nil
}

func valuerOf(v driver.Valuer) (Value, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Null{}, nil
	}
	dv, err := v.Value()
	if err != nil {
		return nil, ErrUnsupportedType.Wrap(err)
	}
	if _, ok := dv.(driver.Valuer); ok {
		return nil, unsupported(v, "driver.Valuer returned another driver.Valuer")
	}
	return ValueOf(dv)
}

func reflectValueOf(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return Null{}, nil
		}
		return ValueOf(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return List{}, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		return listOf(rv.Len(), func(i int) any { return rv.Index(i).Interface() })

	case reflect.Array:
		return listOf(rv.Len(), func(i int) any { return rv.Index(i).Interface() })

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, unsupported(rv.Interface(), "map key is not a string")
		}
		return mapOf(rv)

	// Named scalar types such as `type Status string`.
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return checkFloat(rv.Float())
	case reflect.String:
		return String(rv.String()), nil
	}

	if !rv.IsValid() {
		return Null{}, nil
	}
	return nil, unsupported(rv.Interface(), "")
}

func unsupported(v any, detail string) Err {
	msg := fmt.Sprintf("unsupported value %v of type %T", v, v)
	if detail != "" {
		msg += ": " + detail
	}
	return ErrUnsupportedType.Wrap(errors.New(msg))
}
