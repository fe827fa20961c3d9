package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names shared by every tmc command.
const (
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
	FlagConfig         = "config"
	FlagBaseDir        = "base-dir"
	FlagNoPrompt       = "no-prompt"
	FlagRequestTimeout = "request-timeout"
	FlagEnvFile        = "env-file"
)

// RegisterFlags declares the settings flags on fs.
//
// Flags:
//
//	--log-level        log level (trace, debug, info, warn, error)
//	--log-format       log format (console, json)
//	-c/--config        TOML config file
//	--base-dir         directory config files are resolved against
//	--no-prompt        leave unset fields unset instead of prompting
//	--request-timeout  API request timeout (e.g., 30s, 1m)
//	--env-file         .env file loaded before the environment
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String(FlagLogLevel, d.Log.Level, "Log level (trace, debug, info, warn, error)")
	fs.String(FlagLogFormat, d.Log.Format, "Log format (console, json)")
	fs.StringP(FlagConfig, "c", "", "TOML config file")
	fs.String(FlagBaseDir, "", "Directory config files are resolved against")
	fs.Bool(FlagNoPrompt, false, "Leave unset fields unset instead of prompting")
	fs.Duration(FlagRequestTimeout, d.RequestTimeout, "API request timeout (e.g., 30s, 1m)")
	fs.String(FlagEnvFile, d.EnvFile, ".env file loaded before the environment")
}

// parseFlags returns the settings of the flags explicitly set on fs.
// Flags left at their default do not take part in the merge.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var err error

	if fs.Changed(FlagLogLevel) {
		if cfg.Log.Level, err = fs.GetString(FlagLogLevel); err != nil {
			return nil, flagError(FlagLogLevel, err)
		}
	}
	if fs.Changed(FlagLogFormat) {
		if cfg.Log.Format, err = fs.GetString(FlagLogFormat); err != nil {
			return nil, flagError(FlagLogFormat, err)
		}
	}
	if fs.Changed(FlagConfig) {
		if cfg.ConfigPath, err = fs.GetString(FlagConfig); err != nil {
			return nil, flagError(FlagConfig, err)
		}
	}
	if fs.Changed(FlagBaseDir) {
		if cfg.BaseDir, err = fs.GetString(FlagBaseDir); err != nil {
			return nil, flagError(FlagBaseDir, err)
		}
	}
	if fs.Changed(FlagNoPrompt) {
		if cfg.NoPrompt, err = fs.GetBool(FlagNoPrompt); err != nil {
			return nil, flagError(FlagNoPrompt, err)
		}
	}
	if fs.Changed(FlagRequestTimeout) {
		if cfg.RequestTimeout, err = fs.GetDuration(FlagRequestTimeout); err != nil {
			return nil, flagError(FlagRequestTimeout, err)
		}
	}
	if fs.Changed(FlagEnvFile) {
		if cfg.EnvFile, err = fs.GetString(FlagEnvFile); err != nil {
			return nil, flagError(FlagEnvFile, err)
		}
	}

	return cfg, nil
}

// envFileFromFlags returns the .env path and whether it was given
// explicitly.
func envFileFromFlags(fs *pflag.FlagSet) (string, bool) {
	if fs == nil || fs.Lookup(FlagEnvFile) == nil || !fs.Changed(FlagEnvFile) {
		return defaultEnvFile, false
	}
	path, err := fs.GetString(FlagEnvFile)
	if err != nil {
		return defaultEnvFile, false
	}
	return path, true
}

func flagError(name string, err error) error {
	return fmt.Errorf("error reading flag --%s: %w", name, err)
}
