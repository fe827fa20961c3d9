package tomlconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-toomanyconfigs/internal/logger"
	"github.com/MKhiriev/go-toomanyconfigs/internal/store"
	"github.com/MKhiriev/go-toomanyconfigs/models"
	"github.com/MKhiriev/go-toomanyconfigs/prompt"
	"github.com/spf13/afero"
)

const defaultExtension = ".toml"

// Reconciler builds [Instance] values from schemas, files and overrides.
type Reconciler struct {
	fs          afero.Fs
	store       store.DocumentStore
	dir         string
	ext         string
	prompter    *prompt.Prompter
	registry    *Registry
	promptEmpty bool
	logger      *logger.Logger
}

// New creates a Reconciler. Without options it works in the current
// directory of the OS filesystem and prompts on the terminal.
func New(opts ...Option) (*Reconciler, error) {
	r := &Reconciler{
		ext:         defaultExtension,
		promptEmpty: true,
		logger:      logger.NewConsoleLogger("tomlconfig", "info", os.Stderr).Component("reconciler"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		r.dir = wd
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.store == nil {
		r.store = store.NewTOMLStore(r.fs, r.logger.Component("store"))
	}
	if r.prompter == nil {
		r.prompter = prompt.NewTerminal(prompt.WithLogger(r.logger.Logger))
	}
	return r, nil
}

// Dir returns the directory default file names are derived in.
func (r *Reconciler) Dir() string { return r.dir }

// PathFor returns the file schema binds to when created with source (which
// may be empty).
func (r *Reconciler) PathFor(schema *models.Schema, source string) string {
	if source == "" {
		return filepath.Join(r.dir, strings.ToLower(schema.Name)+r.ext)
	}
	if !filepath.IsAbs(source) {
		source = filepath.Join(r.dir, source)
	}
	return filepath.Clean(source)
}

// Create reconciles schema with its backing file and the overrides, prompts
// for fields still unset and writes the result back.
//
// A missing file is created empty before anything else. Prompting stops at
// the first error, which is returned; fields prompted before the failure are
// not written.
func (r *Reconciler) Create(ctx context.Context, schema *models.Schema, opts ...CreateOption) (*Instance, error) {
	if schema == nil {
		return nil, errors.New("nil schema")
	}
	o := createOptions{promptEmpty: r.promptEmpty}
	for _, opt := range opts {
		opt(&o)
	}

	path := r.PathFor(schema, o.source)
	log := r.logger.With().Str("schema", schema.Name).Str("path", path).Logger()

	fileDoc, found, err := r.load(path)
	if err != nil {
		return nil, err
	}
	if found {
		log.Debug().Msg("building config from file")
	} else {
		log.Warn().Msg("config file not found, creating new one")
		if err = r.store.Touch(path); err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		fileDoc = models.Document{}
	}

	inst, err := r.reconcile(ctx, schema, path, fileDoc, models.NormalizeDocument(o.overrides), o.promptEmpty)
	if err != nil {
		return nil, err
	}
	if err = inst.Write(); err != nil {
		return nil, err
	}
	if r.registry != nil {
		r.registry.Register(inst)
	}

	log.Info().Str("config", inst.String()).Msg("config ready")
	return inst, nil
}

// load decodes path. found is false when the file does not exist.
func (r *Reconciler) load(path string) (doc models.Document, found bool, err error) {
	found, err = r.store.Exists(path)
	if err != nil || !found {
		return nil, found, err
	}
	doc, err = r.store.Load(path)
	if err != nil {
		if errors.Is(err, store.ErrMalformedDocument) {
			return nil, true, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
		}
		return nil, true, err
	}
	return doc, true, nil
}

func (r *Reconciler) reconcile(ctx context.Context, schema *models.Schema, path string, fileDoc, overrides models.Document, promptEmpty bool) (*Instance, error) {
	inst := newInstance(r, schema, path)

	fileFlat := make(models.Document, len(fileDoc))
	overridesFlat := make(models.Document, len(overrides))
	for k, v := range fileDoc {
		fileFlat[k] = v
	}
	for k, v := range overrides {
		overridesFlat[k] = v
	}

	for _, f := range schema.Fields {
		if f.Kind != models.KindSchema {
			continue
		}
		child, err := r.reconcileNested(ctx, schema, f, path, fileDoc, overrides, promptEmpty)
		if err != nil {
			return nil, err
		}
		inst.adopt(child)
		inst.values[f.Name] = models.Nested(child)
		delete(fileFlat, f.Name)
		delete(overridesFlat, f.Name)
	}

	merged, unset, err := mergeLayers(schema.Defaults(), fileFlat, overridesFlat)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", schema.Name, err)
	}

	for _, f := range schema.Fields {
		if f.Kind == models.KindSchema {
			continue
		}
		if v, ok := merged[f.Name]; ok {
			inst.values[f.Name] = models.ValueOf(v)
		}
	}

	dynamic := make(models.Document, len(merged)+len(unset))
	for k, v := range merged {
		dynamic[k] = v
	}
	for k := range unset {
		dynamic[k] = nil
	}
	for _, key := range dynamic.Keys() {
		if schema.Has(key) {
			continue
		}
		if err = inst.Extend(key, dynamic[key]); err != nil {
			return nil, err
		}
	}

	missing := inst.Missing()
	if len(missing) == 0 || !promptEmpty {
		return inst, nil
	}

	r.logger.Info().Str("schema", schema.Name).Strs("fields", missing).Msg("missing fields detected")
	for _, name := range missing {
		value, err := r.prompter.Resolve(ctx, name, inst.String())
		if err != nil {
			return nil, fmt.Errorf("resolve %s.%s: %w", schema.Name, name, err)
		}
		inst.values[name] = models.String(value)
	}
	return inst, nil
}

func (r *Reconciler) reconcileNested(ctx context.Context, parent *models.Schema, f models.Field, path string, fileDoc, overrides models.Document, promptEmpty bool) (*Instance, error) {
	seed, present, isTable := fileDoc.Table(f.Name)
	if present && !isTable {
		return nil, fmt.Errorf("%w: %s.%s expects a table, file holds %T", ErrTypeMismatch, parent.Name, f.Name, fileDoc[f.Name])
	}

	var nestedOverrides models.Document
	switch v := overrides[f.Name].(type) {
	case nil:
	case *Instance:
		if !v.Schema().Same(f.Schema) {
			return nil, fmt.Errorf("%w: %s.%s expects %s, got %s", ErrTypeMismatch, parent.Name, f.Name, f.Schema.Name, v.Name())
		}
		return v, nil
	case map[string]any:
		nestedOverrides = models.Document(v)
	case models.Document:
		nestedOverrides = v
	default:
		return nil, fmt.Errorf("%w: %s.%s expects a table, got %T", ErrTypeMismatch, parent.Name, f.Name, v)
	}

	return r.reconcile(ctx, f.Schema, path, seed, nestedOverrides, promptEmpty)
}

// mergeLayers merges documents lowest precedence first. Nested tables merge
// recursively. Top-level nil values force the key unset and are reported in
// unset rather than merged; Serializable values replace lower layers without
// being merged into.
func mergeLayers(layers ...models.Document) (merged models.Document, unset map[string]bool, err error) {
	merged = models.Document{}
	unset = map[string]bool{}
	opaque := map[string]any{}

	for _, layer := range layers {
		plain := make(models.Document, len(layer))
		for k, v := range layer {
			delete(unset, k)
			delete(opaque, k)
			switch v.(type) {
			case nil:
				delete(merged, k)
				unset[k] = true
			case models.Serializable:
				delete(merged, k)
				opaque[k] = v
			default:
				plain[k] = v
			}
		}
		if len(plain) == 0 {
			continue
		}
		if err = mergo.Merge(&merged, plain.Clone(), mergo.WithOverride); err != nil {
			return nil, nil, fmt.Errorf("merge documents: %w", err)
		}
	}

	for k, v := range opaque {
		merged[k] = v
	}
	return merged, unset, nil
}
