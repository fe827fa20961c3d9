// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"math"
	"strconv"
)

// Serializable is implemented by every nested configuration type. The storage
// layer flattens nested values into tables through this interface only.
type Serializable interface {
	AsDocument() Document
}

// Value is the tagged union held by a configuration field. The zero Value is
// the unset sentinel: distinct from every valid value, including "", 0 and
// false.
type Value struct {
	kind Kind
	set  bool
	raw  any
}

// Unset returns the unset sentinel.
func Unset() Value {
	return Value{}
}

// String wraps s.
func String(s string) Value {
	return Value{kind: KindString, set: true, raw: s}
}

// Int wraps i.
func Int(i int64) Value {
	return Value{kind: KindInt, set: true, raw: i}
}

// Float wraps f.
func Float(f float64) Value {
	return Value{kind: KindFloat, set: true, raw: f}
}

// Bool wraps b.
func Bool(b bool) Value {
	return Value{kind: KindBool, set: true, raw: b}
}

// Nested wraps a nested configuration value. A nil s yields Unset.
func Nested(s Serializable) Value {
	if s == nil {
		return Unset()
	}
	return Value{kind: KindSchema, set: true, raw: s}
}

// ValueOf infers a Value from a Go value using the dynamic type of v:
// nil is the unset placeholder, Go integer types become KindInt (unsigned
// values beyond int64 stay KindRaw), floats
// KindFloat, Serializable values KindSchema and anything else KindRaw.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Unset()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return unsignedValue(uint64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return unsignedValue(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case Serializable:
		if t == nil {
			return Unset()
		}
		return Nested(t)
	default:
		return Value{kind: KindRaw, set: true, raw: v}
	}
}

// unsignedValue keeps integers beyond int64 as raw values instead of
// wrapping them negative.
func unsignedValue(u uint64) Value {
	if u > math.MaxInt64 {
		return Value{kind: KindRaw, set: true, raw: u}
	}
	return Int(int64(u))
}

// IsUnset reports whether v is the unset sentinel.
func (v Value) IsUnset() bool {
	return !v.set
}

// Kind returns the kind of the held value. Unset values report KindAny.
func (v Value) Kind() Kind {
	return v.kind
}

// Interface returns the held Go value, or nil when unset. Nested values are
// returned as their Serializable.
func (v Value) Interface() any {
	if !v.set {
		return nil
	}
	return v.raw
}

// StringValue returns the held string.
func (v Value) StringValue() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.set
}

// IntValue returns the held integer.
func (v Value) IntValue() (int64, bool) {
	i, ok := v.raw.(int64)
	return i, ok && v.set
}

// FloatValue returns the held float. Integers are widened.
func (v Value) FloatValue() (float64, bool) {
	switch t := v.raw.(type) {
	case float64:
		return t, v.set
	case int64:
		return float64(t), v.set
	}
	return 0, false
}

// BoolValue returns the held boolean.
func (v Value) BoolValue() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok && v.set
}

// NestedValue returns the held nested configuration.
func (v Value) NestedValue() (Serializable, bool) {
	s, ok := v.raw.(Serializable)
	return s, ok && v.set
}

// Encode returns the form written into a Document: primitives pass through,
// nested values are flattened via AsDocument. ok is false for unset values,
// which are never written.
func (v Value) Encode() (any, bool) {
	if !v.set {
		return nil, false
	}
	if s, ok := v.raw.(Serializable); ok {
		return map[string]any(s.AsDocument()), true
	}
	return v.raw, true
}

// Text renders v for logs and prompt labels.
func (v Value) Text() string {
	if !v.set {
		return "<unset>"
	}
	switch t := v.raw.(type) {
	case string:
		return strconv.Quote(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
