// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"reflect"
	"sort"
)

// Document is the on-disk hierarchical representation of a configuration:
// field name to value, with nested configurations as nested
// map[string]any tables.
type Document map[string]any

// Keys returns the top-level keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Table returns the nested table stored under key. ok is false when the key
// is absent; isTable is false when the key holds something else.
func (d Document) Table(key string) (table Document, ok bool, isTable bool) {
	v, ok := d[key]
	if !ok {
		return nil, false, false
	}
	switch t := v.(type) {
	case map[string]any:
		return Document(t), true, true
	case Document:
		return t, true, true
	}
	return nil, true, false
}

// Clone returns a deep copy of d. Nested tables and slices are copied, leaf
// values are shared.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case Document:
		return map[string]any(t.Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// NormalizeDocument converts caller-supplied data into the canonical Document
// shape: every nested map with string keys becomes map[string]any, and
// Value wrappers are unwrapped. Serializable values are kept as-is.
func NormalizeDocument(in map[string]any) Document {
	out := make(Document, len(in))
	for k, v := range in {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Value:
		return normalizeValue(t.Interface())
	case Serializable:
		return t
	case Document:
		return map[string]any(NormalizeDocument(t))
	case map[string]any:
		return map[string]any(NormalizeDocument(t))
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = normalizeValue(iter.Value().Interface())
		}
		return m
	}
	return v
}
