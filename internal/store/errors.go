package store

import "errors"

// Sentinel errors returned by [DocumentStore] implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrMalformedDocument is returned when a stored file exists but cannot
	// be decoded as a TOML document.
	ErrMalformedDocument = errors.New("malformed toml document")

	// ErrEncodingDocument is returned when a document cannot be encoded as
	// TOML (e.g. a value of a type TOML cannot represent).
	ErrEncodingDocument = errors.New("error encoding toml document")
)
