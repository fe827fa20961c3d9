package tomlconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-toomanyconfigs/models"
)

// Instance is a populated configuration bound to its backing file. Declared
// fields come first in schema order, followed by dynamic fields absorbed
// from the file or the overrides.
//
// An Instance is not safe for concurrent mutation.
type Instance struct {
	schema *models.Schema
	order  []string
	kinds  map[string]models.Kind
	values map[string]models.Value

	path   string
	parent *Instance
	rec    *Reconciler
}

func newInstance(rec *Reconciler, schema *models.Schema, path string) *Instance {
	inst := &Instance{
		schema: schema,
		order:  make([]string, 0, len(schema.Fields)),
		kinds:  make(map[string]models.Kind, len(schema.Fields)),
		values: make(map[string]models.Value, len(schema.Fields)),
		path:   path,
		rec:    rec,
	}
	for _, f := range schema.Fields {
		inst.order = append(inst.order, f.Name)
		inst.kinds[f.Name] = f.Kind
		inst.values[f.Name] = models.Unset()
	}
	return inst
}

// Schema returns the declared schema.
func (i *Instance) Schema() *models.Schema { return i.schema }

// Name returns the schema name.
func (i *Instance) Name() string { return i.schema.Name }

// Path returns the backing file. Nested instances share the root's file.
func (i *Instance) Path() string { return i.path }

// Dir returns the directory holding the backing file.
func (i *Instance) Dir() string {
	if i.path == "" {
		return ""
	}
	return filepath.Dir(i.path)
}

// Root returns the outermost instance of the file i belongs to.
func (i *Instance) Root() *Instance {
	root := i
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Fields returns all field names, declared first, then dynamic ones.
func (i *Instance) Fields() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

// Dynamic reports whether name is a field absorbed at runtime rather than
// declared in the schema.
func (i *Instance) Dynamic(name string) bool {
	_, known := i.kinds[name]
	return known && !i.schema.Has(name)
}

// Get returns the value of name. ok is false for unknown names.
func (i *Instance) Get(name string) (models.Value, bool) {
	if _, known := i.kinds[name]; !known {
		return models.Value{}, false
	}
	return i.values[name], true
}

// GetString returns the string held by name.
func (i *Instance) GetString(name string) (string, bool) {
	v, _ := i.Get(name)
	return v.StringValue()
}

// GetInt returns the integer held by name.
func (i *Instance) GetInt(name string) (int64, bool) {
	v, _ := i.Get(name)
	return v.IntValue()
}

// GetFloat returns the float held by name. Integers are widened.
func (i *Instance) GetFloat(name string) (float64, bool) {
	v, _ := i.Get(name)
	return v.FloatValue()
}

// GetBool returns the boolean held by name.
func (i *Instance) GetBool(name string) (bool, bool) {
	v, _ := i.Get(name)
	return v.BoolValue()
}

// Nested returns the nested configuration held by name.
func (i *Instance) Nested(name string) (*Instance, bool) {
	v, _ := i.Get(name)
	s, ok := v.NestedValue()
	if !ok {
		return nil, false
	}
	child, ok := s.(*Instance)
	return child, ok
}

// Set assigns v to an existing field. A nested-schema field only accepts an
// *Instance of the declared schema (or nil, which unsets it), and the
// instance is attached to i's file. Primitive fields are not type checked; TOML round trips decide the
// final representation.
func (i *Instance) Set(name string, v any) error {
	kind, known := i.kinds[name]
	if !known {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, i.Name(), name)
	}

	if kind == models.KindSchema {
		if v == nil {
			i.values[name] = models.Unset()
			return nil
		}
		child, ok := v.(*Instance)
		if !ok {
			return fmt.Errorf("%w: %s.%s expects a nested configuration, got %T", ErrTypeMismatch, i.Name(), name, v)
		}
		if field, declared := i.schema.Field(name); declared && !child.Schema().Same(field.Schema) {
			return fmt.Errorf("%w: %s.%s expects %s, got %s", ErrTypeMismatch, i.Name(), name, field.Schema.Name, child.Name())
		}
		i.adopt(child)
		i.values[name] = models.Nested(child)
		return nil
	}

	value := models.ValueOf(v)
	if child, ok := v.(*Instance); ok {
		i.adopt(child)
	}
	i.values[name] = value
	return nil
}

// Extend adds a dynamic field holding v. Extending with a name that already
// exists behaves like [Instance.Set].
func (i *Instance) Extend(name string, v any) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty field name", ErrUnknownField)
	}
	if _, known := i.kinds[name]; known {
		return i.Set(name, v)
	}

	value := models.ValueOf(v)
	if child, ok := v.(*Instance); ok {
		i.adopt(child)
	}
	i.order = append(i.order, name)
	i.kinds[name] = value.Kind()
	i.values[name] = value
	return nil
}

// Missing returns the names of unset fields in field order.
func (i *Instance) Missing() []string {
	var out []string
	for _, name := range i.order {
		if i.values[name].IsUnset() {
			out = append(out, name)
		}
	}
	return out
}

// AsDocument implements [models.Serializable]. Unset fields are omitted and
// nested configurations become tables.
func (i *Instance) AsDocument() models.Document {
	doc := make(models.Document, len(i.order))
	for _, name := range i.order {
		if encoded, ok := i.values[name].Encode(); ok {
			doc[name] = encoded
		}
	}
	return doc
}

// Write saves the whole file i belongs to. Calling Write on a nested
// instance writes its root.
func (i *Instance) Write() error {
	root := i.Root()
	if root.path == "" || root.rec == nil {
		return ErrNoPath
	}
	if err := root.rec.store.Save(root.path, root); err != nil {
		return fmt.Errorf("write %s: %w", root.Name(), err)
	}
	root.rec.logger.Debug().Str("schema", root.Name()).Str("path", root.path).Msg("config written")
	return nil
}

// Read loads the backing file and overwrites in-memory values with it, so
// unsaved changes to fields present in the file are lost. Nested tables are
// reconciled again with the table as overrides; existing nested instances are
// updated in place. Keys that are not fields of i are ignored. The loaded
// document is returned; an absent file yields an empty document.
func (i *Instance) Read(ctx context.Context) (models.Document, error) {
	if i.parent != nil {
		return nil, ErrNotRoot
	}
	if i.path == "" || i.rec == nil {
		return nil, ErrNoPath
	}

	rec := i.rec
	doc, found, err := rec.load(i.path)
	if err != nil {
		return nil, err
	}
	if !found {
		rec.logger.Warn().Str("path", i.path).Msg("config file not found")
		return models.Document{}, nil
	}

	// Nested tables are checked and rebuilt before anything is assigned, so
	// a failure leaves i untouched.
	fresh := make(map[string]*Instance)
	for _, key := range doc.Keys() {
		field, declared := i.schema.Field(key)
		if !declared || field.Kind != models.KindSchema {
			continue
		}
		table, _, isTable := doc.Table(key)
		if !isTable {
			return nil, fmt.Errorf("%w: %s.%s expects a table, file holds %T", ErrTypeMismatch, i.Name(), key, doc[key])
		}
		child, err := rec.reconcile(ctx, field.Schema, i.path, models.Document{}, table, rec.promptEmpty)
		if err != nil {
			return nil, fmt.Errorf("read %s.%s: %w", i.Name(), key, err)
		}
		fresh[key] = child
	}

	for _, key := range doc.Keys() {
		if _, known := i.kinds[key]; !known {
			continue
		}
		child, isNested := fresh[key]
		if !isNested {
			i.values[key] = models.ValueOf(doc[key])
			rec.logger.Debug().Str("schema", i.Name()).Str("field", key).Msg("field overridden from file")
			continue
		}
		if current, ok := i.Nested(key); ok {
			current.replace(child)
		} else {
			i.adopt(child)
			i.values[key] = models.Nested(child)
		}
	}

	return doc, nil
}

// String renders i as Name(field=value, ...).
func (i *Instance) String() string {
	var b strings.Builder
	b.WriteString(i.Name())
	b.WriteByte('(')
	for n, name := range i.order {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(i.values[name].Text())
	}
	b.WriteByte(')')
	return b.String()
}

func (i *Instance) adopt(child *Instance) {
	child.parent = i
	child.path = i.path
	if child.rec == nil {
		child.rec = i.rec
	}
}

// replace swaps the contents of i for fresh while keeping i's position in
// the tree, so pointers held by callers stay valid.
func (i *Instance) replace(fresh *Instance) {
	parent := i.parent
	*i = *fresh
	i.parent = parent
	for _, name := range i.order {
		if child, ok := i.Nested(name); ok {
			child.parent = i
		}
	}
}

var _ models.Serializable = (*Instance)(nil)
