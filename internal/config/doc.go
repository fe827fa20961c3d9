// Package config provides settings loading, merging, and validation
// facilities for the tmc command.
//
// Settings are assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. A .env file (only for variables not already in the environment)
//  3. Environment variables prefixed with TMC_
//  4. Command-line flags that were explicitly set
//
// The main entry point is [GetStructuredConfig].
package config
