package api

import "errors"

var (
	// ErrMissingRoute is returned when a route name is not declared in the
	// routes table and is not an absolute URL either.
	ErrMissingRoute = errors.New("missing route")

	// ErrInvalidConfig is returned by [FromInstance] when the instance was
	// not built from [Schema].
	ErrInvalidConfig = errors.New("invalid api config")
)
