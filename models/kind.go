// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Kind is the semantic type of a schema field or of a stored value.
type Kind int

const (
	// KindAny is an untyped field. Dynamic fields whose supplied value is nil
	// are declared with this kind.
	KindAny Kind = iota
	// KindString is a TOML string.
	KindString
	// KindInt is a TOML integer, held as int64.
	KindInt
	// KindFloat is a TOML float, held as float64.
	KindFloat
	// KindBool is a TOML boolean.
	KindBool
	// KindSchema is a nested configuration type stored as a TOML table.
	KindSchema
	// KindRaw is any other TOML value (arrays, datetimes, plain tables on
	// non-nested fields). Raw values are written back untouched.
	KindRaw
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindSchema:
		return "schema"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}
