// Package models holds the data types shared by the configuration packages:
// schemas and their fields, the tagged Value union held by configuration
// fields, the Document form stored on disk and the Response produced by the
// API helper.
package models
