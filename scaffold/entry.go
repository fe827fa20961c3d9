package scaffold

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Entry describes part of a file layout.
type Entry interface {
	collect(base string, l *layout)
}

type layout struct {
	files []string
	dirs  []string
}

type fileEntry string

// File is a file directly under the enclosing directory.
func File(name string) Entry { return fileEntry(name) }

func (e fileEntry) collect(base string, l *layout) {
	l.files = append(l.files, filepath.Join(base, string(e)))
}

type dirEntry struct {
	name     string
	children []Entry
}

// Dir is a directory holding children. A Dir without children is created
// empty.
func Dir(name string, children ...Entry) Entry {
	return dirEntry{name: name, children: children}
}

func (e dirEntry) collect(base string, l *layout) {
	dir := filepath.Join(base, e.name)
	if len(e.children) == 0 {
		l.dirs = append(l.dirs, dir)
		return
	}
	for _, c := range e.children {
		c.collect(dir, l)
	}
}

type groupEntry []Entry

// Group is a list of siblings sharing the enclosing directory.
func Group(children ...Entry) Entry { return groupEntry(children) }

func (e groupEntry) collect(base string, l *layout) {
	for _, c := range e {
		c.collect(base, l)
	}
}

type pathEntry string

// Path is a file given by path. Relative paths are resolved against the
// scaffold base, absolute ones are kept.
func Path(p string) Entry { return pathEntry(p) }

func (e pathEntry) collect(base string, l *layout) {
	p := string(e)
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	l.files = append(l.files, filepath.Clean(p))
}

// FromValue converts decoded TOML or JSON into an Entry:
//   - a string is a file
//   - an array is a list of siblings
//   - a table maps folder names to their content; a nil, empty string or
//     empty table value makes the key itself a file
func FromValue(v any) (Entry, error) {
	switch t := v.(type) {
	case string:
		return File(t), nil
	case []any:
		return fromList(t)
	case []string:
		out := make(groupEntry, 0, len(t))
		for _, s := range t {
			out = append(out, File(s))
		}
		return out, nil
	case map[string]any:
		return fromTable(t)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func fromList(items []any) (Entry, error) {
	out := make(groupEntry, 0, len(items))
	for _, item := range items {
		e, err := FromValue(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func fromTable(table map[string]any) (Entry, error) {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(groupEntry, 0, len(keys))
	for _, key := range keys {
		switch t := table[key].(type) {
		case nil:
			out = append(out, File(key))
		case string:
			if t == "" {
				out = append(out, File(key))
				continue
			}
			out = append(out, Dir(key, File(t)))
		case map[string]any:
			if len(t) == 0 {
				out = append(out, File(key))
				continue
			}
			inner, err := fromTable(t)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out = append(out, Dir(key, inner))
		default:
			inner, err := FromValue(t)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out = append(out, Dir(key, inner))
		}
	}
	return out, nil
}
