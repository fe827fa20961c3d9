// Package tomlconfig binds declarative schemas to TOML files.
//
// A [Reconciler] turns a [models.Schema] into a populated [Instance]:
//
//	r, err := tomlconfig.New()
//	cfg, err := r.Create(ctx, schema,
//	    tomlconfig.Source("app.toml"),
//	    tomlconfig.Overrides(map[string]any{"port": 8080}),
//	)
//
// Values are merged with the following precedence (later wins):
//  1. Schema defaults
//  2. The TOML file (created when missing)
//  3. Caller overrides
//
// Nested schemas live in tables of the same file. Fields still unset after
// the merge are resolved through the prompter, and the result is written
// back to the file.
//
// There is no file locking. One process is expected to own a configuration
// file; concurrent writers race and the last write wins.
package tomlconfig
