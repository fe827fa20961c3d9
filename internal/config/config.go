// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by the tmc command.
const EnvPrefix = "TMC_"

// StructuredConfig is the top-level settings container for the tmc
// command. It is populated by merging defaults, a .env file, environment
// variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields,
//     itself prefixed with [EnvPrefix].
type StructuredConfig struct {
	// Log controls diagnostic output.
	Log Log `envPrefix:"LOG_"`

	// ConfigPath is the TOML file used by the api and show commands. Empty
	// means the file derived from the schema name in BaseDir.
	// Env: TMC_CONFIG
	ConfigPath string `env:"CONFIG"`

	// BaseDir is the directory configuration files and scaffolds are
	// resolved against. Empty means the working directory.
	// Env: TMC_BASE_DIR
	BaseDir string `env:"BASE_DIR"`

	// NoPrompt disables prompting for unset fields.
	// Env: TMC_NO_PROMPT
	NoPrompt bool `env:"NO_PROMPT"`

	// RequestTimeout bounds every outgoing API request (e.g. "30s", "1m").
	// Env: TMC_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// EnvFile is the .env file loaded before the environment is parsed.
	// Only settable by flag, since it decides how the environment is built.
	EnvFile string
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	// Env: TMC_LOG_LEVEL
	Level string `env:"LEVEL"`

	// Format is "console" for human-readable output or "json".
	// Env: TMC_LOG_FORMAT
	Format string `env:"FORMAT"`
}

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"

	defaultEnvFile = ".env"
)

// Defaults returns the settings used when no source provides a value.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Log:            Log{Level: "info", Format: LogFormatConsole},
		RequestTimeout: 30 * time.Second,
		EnvFile:        defaultEnvFile,
	}
}

// GetStructuredConfig loads, merges, and validates the settings from all
// available sources. flags holds the persistent flags registered with
// [RegisterFlags]; a nil set skips the flag layer.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final settings fail validation.
func GetStructuredConfig(flags *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv(envFileFromFlags(flags)).
		withEnv().
		withFlags(flags).
		build()
}
