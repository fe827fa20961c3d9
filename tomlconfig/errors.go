package tomlconfig

import "errors"

// Sentinel errors returned by the reconciler and [Instance] methods. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrMalformedConfig is returned when the backing file exists but is not
	// a valid TOML document. It is never retried.
	ErrMalformedConfig = errors.New("malformed config")

	// ErrTypeMismatch is returned when a nested-schema field receives data
	// that is not a table (or a built instance).
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownField is returned by [Instance.Set] for names that are
	// neither declared nor dynamically added.
	ErrUnknownField = errors.New("unknown field")

	// ErrNoPath is returned when an instance without a backing file is
	// written or read.
	ErrNoPath = errors.New("no path set for configuration file")

	// ErrNotRoot is returned by [Instance.Read] on nested instances; only
	// the root of a file can be re-read.
	ErrNotRoot = errors.New("not a root configuration")
)
