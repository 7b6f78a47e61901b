// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"bytes"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ValueKind discriminates the variants of a [Value].
type ValueKind uint8

const (
	NullKind ValueKind = iota
	BoolKind
	NumberKind
	StringKind
	ListKind
	ObjectKind
)

// String returns the name of the kind.
func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ListKind:
		return "list"
	case ObjectKind:
		return "object"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// Value is a tagged JSON value stored in a [Metadata] bag.
//
// The zero Value is null. Numbers keep their JSON text, so integers beyond
// the float64 range survive a round trip unchanged.
type Value struct {
	kind ValueKind
	b    bool
	num  string
	s    string
	list []Value
	obj  Metadata
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: BoolKind, b: b} }

// NumberValue returns a numeric value.
func NumberValue(n float64) Value {
	return Value{kind: NumberKind, num: strconv.FormatFloat(n, 'g', -1, 64)}
}

// IntValue returns an integral numeric value.
func IntValue(n int64) Value { return Value{kind: NumberKind, num: strconv.FormatInt(n, 10)} }

// NumberText returns a numeric value holding the JSON number text. It fails if
// text is not a valid JSON number.
func NumberText(text string) (Value, error) {
	if raw := jsontext.Value(text); raw.Kind() != '0' || !raw.IsValid() {
		return Value{}, fmt.Errorf("invalid JSON number %q", text)
	}
	return Value{kind: NumberKind, num: text}, nil
}

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: StringKind, s: s} }

// ListValue returns a list value holding vs.
func ListValue(vs ...Value) Value { return Value{kind: ListKind, list: slices.Clone(vs)} }

// ObjectValue returns an object value holding a copy of m.
func ObjectValue(m Metadata) Value { return Value{kind: ObjectKind, obj: m.Clone()} }

// ValueOf converts a Go value of JSON-compatible shape into a [Value].
func ValueOf(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case Metadata:
		return ObjectValue(x), nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case float64:
		return NumberValue(x), nil
	case float32:
		return NumberValue(float64(x)), nil
	case int:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint:
		return Value{kind: NumberKind, num: strconv.FormatUint(uint64(x), 10)}, nil
	case uint32:
		return IntValue(int64(x)), nil
	case uint64:
		return Value{kind: NumberKind, num: strconv.FormatUint(x, 10)}, nil
	case []Value:
		return ListValue(x...), nil
	case []any:
		list := make([]Value, len(x))
		for i, e := range x {
			v, err := ValueOf(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			list[i] = v
		}
		return Value{kind: ListKind, list: list}, nil
	case map[string]any:
		m, err := MetadataOf(x)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: ObjectKind, obj: m}, nil
	default:
		return Value{}, fmt.Errorf("unsupported metadata value type %T", x)
	}
}

// Kind reports the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == NullKind }

// Bool returns the boolean held by v, or false.
func (v Value) Bool() bool { return v.b }

// Number returns the number held by v parsed as a float64, or 0.
func (v Value) Number() float64 {
	f, _ := strconv.ParseFloat(v.num, 64)
	return f
}

// Int64 returns the number held by v as an int64. It fails when v is not an
// integral number within the int64 range.
func (v Value) Int64() (int64, error) {
	if v.kind != NumberKind {
		return 0, fmt.Errorf("metadata value is %s, not number", v.kind)
	}
	return strconv.ParseInt(v.num, 10, 64)
}

// Text returns the JSON text of the number held by v, or "".
func (v Value) Text() string { return v.num }

// Str returns the string held by v, or "".
func (v Value) Str() string { return v.s }

// List returns a copy of the list held by v.
func (v Value) List() []Value { return slices.Clone(v.list) }

// Object returns a copy of the object held by v.
func (v Value) Object() Metadata { return v.obj.Clone() }

// Any converts v back into plain Go values (nil, bool, float64, string, []any, map[string]any).
// Numbers become float64.
func (v Value) Any() any {
	switch v.kind {
	case BoolKind:
		return v.b
	case NumberKind:
		return v.Number()
	case StringKind:
		return v.s
	case ListKind:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Any()
		}
		return out
	case ObjectKind:
		return v.obj.AsMap()
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same JSON value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case BoolKind:
		return v.b == o.b
	case NumberKind:
		return v.num == o.num || numbersEqual(v.num, o.num)
	case StringKind:
		return v.s == o.s
	case ListKind:
		return slices.EqualFunc(v.list, o.list, Value.Equal)
	case ObjectKind:
		return v.obj.Equal(o.obj)
	default:
		return true
	}
}

// MarshalJSON implements [json.Marshaler]. Numbers are written as the JSON
// text they were decoded from.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case BoolKind:
		return strconv.AppendBool(nil, v.b), nil
	case NumberKind:
		if raw := jsontext.Value(v.num); raw.Kind() != '0' || !raw.IsValid() {
			return nil, fmt.Errorf("invalid JSON number %q", v.num)
		}
		return []byte(v.num), nil
	case StringKind:
		return json.Marshal(v.s)
	case ListKind:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list, json.Deterministic(true))
	case ObjectKind:
		return v.obj.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements [json.Unmarshaler].
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch jsontext.Value(data).Kind() {
	case 'n':
		*v = NullValue()
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case '0':
		val, err := NumberText(string(data))
		if err != nil {
			return err
		}
		*v = val
	case '[':
		var list []Value
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if list == nil {
			list = []Value{}
		}
		*v = Value{kind: ListKind, list: list}
	case '{':
		var m Metadata
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		if m == nil {
			m = Metadata{}
		}
		*v = Value{kind: ObjectKind, obj: m}
	default:
		return fmt.Errorf("invalid metadata value %q", data)
	}
	return nil
}

func numbersEqual(a, b string) bool {
	x, ok := new(big.Rat).SetString(a)
	if !ok {
		return false
	}
	y, ok := new(big.Rat).SetString(b)
	if !ok {
		return false
	}
	return x.Cmp(y) == 0
}

// Metadata is an open string-keyed mapping of tagged values.
type Metadata map[string]Value

// MetadataOf converts a plain Go map into [Metadata].
func MetadataOf(m map[string]any) (Metadata, error) {
	if m == nil {
		return nil, nil
	}
	out := make(Metadata, len(m))
	for k, x := range m {
		v, err := ValueOf(x)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// Clone returns a deep copy of m.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v.clone()
	}
	return out
}

// Merge copies every entry of other into m, overwriting existing keys, and returns m.
// A nil m is allocated.
func (m Metadata) Merge(other Metadata) Metadata {
	if m == nil && len(other) > 0 {
		m = make(Metadata, len(other))
	}
	for k, v := range other {
		m[k] = v.clone()
	}
	return m
}

// Keys returns the keys of m in sorted order.
func (m Metadata) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// AsMap converts m into a plain Go map.
func (m Metadata) AsMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Any()
	}
	return out
}

// Equal reports whether m and o hold the same entries.
func (m Metadata) Equal(o Metadata) bool {
	return maps.EqualFunc(m, o, Value.Equal)
}

// MarshalJSON implements [json.Marshaler] with sorted keys.
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(m), json.Deterministic(true))
}

// UnmarshalJSON implements [json.Unmarshaler].
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = raw
	return nil
}

func (v Value) clone() Value {
	switch v.kind {
	case ListKind:
		list := make([]Value, len(v.list))
		for i, e := range v.list {
			list[i] = e.clone()
		}
		v.list = list
	case ObjectKind:
		v.obj = v.obj.Clone()
	}
	return v
}
