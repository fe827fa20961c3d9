package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when settings
// are incomplete or invalid.
var (
	// ErrInvalidLogConfigs indicates an unknown log level or format.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
	// ErrInvalidHTTPConfigs indicates invalid API client settings
	// (for example, a negative request timeout).
	ErrInvalidHTTPConfigs = errors.New("invalid http configuration")
)
