// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used by a command.
//
// Returns nil if the settings are valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil || cfg.Log.Level == "" {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidLogConfigs, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidLogConfigs, cfg.Log.Format)
	}

	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout %s", ErrInvalidHTTPConfigs, cfg.RequestTimeout)
	}

	return nil
}
