package phpser

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the kind of a decoded value.
type Kind uint8

const (
	KindInt Kind = iota
	KindString
	KindBool
	KindRecord
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is a decoded value: an integer, string, or boolean scalar, or a
// nested Record. The zero Value is the integer 0.
type Value struct {
	kind Kind

	intVal  int64
	strVal  string
	boolVal bool
	rec     *Record
}

// Int creates an integer value.
func Int(v int64) Value { return Value{kind: KindInt, intVal: v} }

// Str creates a string value.
func Str(v string) Value { return Value{kind: KindString, strVal: v} }

// Bool creates a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, boolVal: v} }

// RecordVal wraps a Record as a value.
func RecordVal(r *Record) Value { return Value{kind: KindRecord, rec: r} }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer value.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("phpser: expected int, got %s", v.kind)
	}
	return v.intVal, nil
}

// AsStr returns the string value.
func (v Value) AsStr() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("phpser: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsBool returns the boolean value.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("phpser: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsRecord returns the nested record.
func (v Value) AsRecord() (*Record, error) {
	if v.kind != KindRecord {
		return nil, fmt.Errorf("phpser: expected record, got %s", v.kind)
	}
	return v.rec, nil
}

// Equal reports whether two values are the same scalar. Records compare by
// identity, never by contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.intVal == o.intVal
	case KindString:
		return v.strVal == o.strVal
	case KindBool:
		return v.boolVal == o.boolVal
	case KindRecord:
		return v.rec == o.rec
	}
	return false
}

// String returns a debug representation.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindString:
		return strconv.Quote(v.strVal)
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindRecord:
		return v.rec.String()
	}
	return "unknown"
}

// Entry is a key-value pair in a Record.
type Entry struct {
	Key   Value
	Value Value
}

// Record is a decoded associative structure. Entries keep their insertion
// order; a duplicate key keeps the first occurrence's position with the
// last occurrence's value.
type Record struct {
	entries []Entry
}

// Len returns the number of entries.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns the entries in insertion order.
func (r *Record) Entries() []Entry {
	if r == nil {
		return nil
	}
	return r.entries
}

// Get returns the value stored directly under key, without descending into
// nested records.
func (r *Record) Get(key Value) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	for _, e := range r.entries {
		if e.Key.Equal(key) {
			return e.Value, true
		}
	}
	return Value{}, false
}

func (r *Record) set(key, val Value) {
	for i, e := range r.entries {
		if e.Key.Equal(key) {
			r.entries[i].Value = val
			return
		}
	}
	r.entries = append(r.entries, Entry{Key: key, Value: val})
}

// String returns a compact debug form, e.g. {"a": 1, "b": {"c": true}}.
func (r *Record) String() string {
	if r == nil {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key.String())
		sb.WriteString(": ")
		sb.WriteString(e.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
