// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Field declares a single named configuration field.
type Field struct {
	// Name is the field name, unique within its schema. It is also the key
	// used in the stored document.
	Name string
	// Kind is the semantic type of the field.
	Kind Kind
	// Default is the declared default. Only meaningful when HasDefault is set.
	Default Value
	// HasDefault reports whether the schema declares a default for the field.
	// Fields without one stay unset until the file, the overrides or the
	// prompter supply a value.
	HasDefault bool
	// Schema is the nested configuration type of a KindSchema field.
	Schema *Schema
}

// StringField declares a string field without a default.
func StringField(name string) Field {
	return Field{Name: name, Kind: KindString}
}

// IntField declares an integer field without a default.
func IntField(name string) Field {
	return Field{Name: name, Kind: KindInt}
}

// FloatField declares a float field without a default.
func FloatField(name string) Field {
	return Field{Name: name, Kind: KindFloat}
}

// BoolField declares a boolean field without a default.
func BoolField(name string) Field {
	return Field{Name: name, Kind: KindBool}
}

// AnyField declares an untyped field without a default.
func AnyField(name string) Field {
	return Field{Name: name, Kind: KindAny}
}

// NestedField declares a field holding a nested configuration of type s.
// Nested fields are always materialized, so their defaults come from s.
func NestedField(name string, s *Schema) Field {
	return Field{Name: name, Kind: KindSchema, Schema: s}
}

// WithDefault returns a copy of f with the given default. A nil default is
// ignored, keeping the field required.
func (f Field) WithDefault(v any) Field {
	val := ValueOf(v)
	if val.IsUnset() {
		return f
	}
	f.Default = val
	f.HasDefault = true
	return f
}

// Schema is an ordered set of field declarations.
type Schema struct {
	// Name identifies the configuration type. Lower-cased it derives the
	// default file name.
	Name   string
	Fields []Field

	index map[string]int
}

// NewSchema builds a schema from fields in declaration order. It panics on
// duplicate or empty field names, as those are programming errors.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{Name: name, Fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if f.Name == "" {
			panic(fmt.Sprintf("models: schema %s: field %d has no name", name, i))
		}
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("models: schema %s: duplicate field %q", name, f.Name))
		}
		if f.Kind == KindSchema && f.Schema == nil {
			panic(fmt.Sprintf("models: schema %s: nested field %q has no schema", name, f.Name))
		}
		s.index[f.Name] = i
	}
	return s
}

// Field returns the declaration of name.
func (s *Schema) Field(name string) (Field, bool) {
	if s.index == nil {
		for _, f := range s.Fields {
			if f.Name == name {
				return f, true
			}
		}
		return Field{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// Names returns the declared field names in order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Defaults returns the declared defaults of the non-nested fields.
func (s *Schema) Defaults() Document {
	doc := make(Document)
	for _, f := range s.Fields {
		if f.Kind == KindSchema || !f.HasDefault {
			continue
		}
		if v, ok := f.Default.Encode(); ok {
			doc[f.Name] = v
		}
	}
	return doc
}

// Same reports whether s and o declare the same configuration type: the
// same pointer, or the same name with the same field names and kinds in
// order. Schemas are usually rebuilt by constructor functions, so pointer
// identity alone is too strict.
func (s *Schema) Same(o *Schema) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || s.Name != o.Name || len(s.Fields) != len(o.Fields) {
		return false
	}
	for i, f := range s.Fields {
		if f.Name != o.Fields[i].Name || f.Kind != o.Fields[i].Kind {
			return false
		}
	}
	return true
}
