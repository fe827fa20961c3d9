// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the storage adapter of the configuration packages. It
// serializes configuration documents to and from TOML files on an
// [afero.Fs], so tests can run against an in-memory filesystem.
package store

import (
	"github.com/MKhiriev/go-toomanyconfigs/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/document_store_mock.go -package=mock

// DocumentStore reads and writes whole configuration documents.
//
// Writes replace the file wholesale. There is no locking: one process is
// assumed to own a given file, and concurrent writers race with the last
// writer winning.
type DocumentStore interface {
	// Exists reports whether a file is present at path.
	Exists(path string) (bool, error)

	// Touch creates an empty file at path, including missing parent
	// directories. An existing file is left untouched.
	Touch(path string) error

	// Load decodes the document stored at path. It wraps
	// [ErrMalformedDocument] when the content is not valid TOML.
	Load(path string) (models.Document, error)

	// Save encodes s and overwrites the file at path.
	Save(path string, s models.Serializable) error
}
