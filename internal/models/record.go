package models

import (
	"fmt"
	"strings"
)

// Field is a single named value of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered set of fields. Field order is the order in which
// columns are first seen when building CASE updates, and the order in which
// keys are written when the record is encoded as a Map.
type Record []Field

// Get returns the value of the first field named key. A missing field is
// reported as Absent.
func (r Record) Get(key string) any {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return Absent{}
}

// String renders the record for diagnostics.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		switch v := f.Value.(type) {
		case nil, Null:
			b.WriteString("null")
		case Absent:
			b.WriteString("undefined")
		case string:
			fmt.Fprintf(&b, "%q", v)
		default:
			fmt.Fprintf(&b, "%v", v)
		}
	}
	b.WriteByte('}')
	return b.String()
}

func (r Record) toMap() (Value, error) {
	out := make(Map, 0, len(r))
	for _, f := range r {
		val, err := ValueOf(f.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: f.Key, Value: val})
	}
	return out, nil
}
