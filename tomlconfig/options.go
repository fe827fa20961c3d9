package tomlconfig

import (
	"strings"

	"github.com/MKhiriev/go-toomanyconfigs/internal/logger"
	"github.com/MKhiriev/go-toomanyconfigs/internal/store"
	"github.com/MKhiriev/go-toomanyconfigs/prompt"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Option configures a [Reconciler].
type Option func(*Reconciler)

// WithFs sets the filesystem holding configuration files. Defaults to the
// operating system filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(r *Reconciler) {
		r.fs = fsys
	}
}

// WithDir sets the directory used to derive default file names and to
// resolve relative sources. Defaults to the process working directory.
func WithDir(dir string) Option {
	return func(r *Reconciler) {
		r.dir = dir
	}
}

// WithExtension sets the extension of derived file names. Defaults to
// ".toml".
func WithExtension(ext string) Option {
	return func(r *Reconciler) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.ext = ext
	}
}

// WithPrompter sets the prompter resolving unset fields. Defaults to the
// terminal prompter.
func WithPrompter(p *prompt.Prompter) Option {
	return func(r *Reconciler) {
		r.prompter = p
	}
}

// WithPromptEmptyFields sets whether unset fields are prompted for.
// Defaults to true. When disabled, unset fields stay unset and are left out
// of the written file.
func WithPromptEmptyFields(enabled bool) Option {
	return func(r *Reconciler) {
		r.promptEmpty = enabled
	}
}

// WithRegistry registers every created instance in reg.
func WithRegistry(reg *Registry) Option {
	return func(r *Reconciler) {
		r.registry = reg
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger.Wrap(l).Component("reconciler")
	}
}

func withStore(s store.DocumentStore) Option {
	return func(r *Reconciler) {
		r.store = s
	}
}

// CreateOption configures a single [Reconciler.Create] call.
type CreateOption func(*createOptions)

type createOptions struct {
	source      string
	overrides   map[string]any
	promptEmpty bool
}

// Source sets the backing file. Without it the file is
// <dir>/<lower-cased schema name><ext>.
func Source(path string) CreateOption {
	return func(o *createOptions) {
		o.source = path
	}
}

// Overrides supplies values taking precedence over the file and the
// defaults. Keys not declared in the schema become dynamic fields; a nil
// value forces the field unset.
func Overrides(values map[string]any) CreateOption {
	return func(o *createOptions) {
		o.overrides = values
	}
}

// PromptEmptyFields overrides the reconciler-wide prompting setting for
// this call.
func PromptEmptyFields(enabled bool) CreateOption {
	return func(o *createOptions) {
		o.promptEmpty = enabled
	}
}
