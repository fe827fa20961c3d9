package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilderFailsValidation verifies that a builder without the
// defaults layer yields settings without a log level, which are rejected.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidLogConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterLayersWin verifies that later non-zero fields override
// earlier ones and zero fields do not.
func TestBuild_LaterLayersWin(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{Log: Log{Level: "debug"}, BaseDir: "/first"},
		&StructuredConfig{BaseDir: "/second"},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, LogFormatConsole, cfg.Log.Format)
	assert.Equal(t, "/second", cfg.BaseDir)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

// TestBuild_Validation covers the rejected settings.
func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name    string
		layer   *StructuredConfig
		wantErr error
	}{
		{name: "unknown level", layer: &StructuredConfig{Log: Log{Level: "loud"}}, wantErr: ErrInvalidLogConfigs},
		{name: "unknown format", layer: &StructuredConfig{Log: Log{Format: "xml"}}, wantErr: ErrInvalidLogConfigs},
		{name: "negative timeout", layer: &StructuredConfig{RequestTimeout: -time.Second}, wantErr: ErrInvalidHTTPConfigs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder().withDefaults()
			b.configs = append(b.configs, tt.layer)

			_, err := b.build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("TMC_LOG_LEVEL", "trace")
	t.Setenv("TMC_BASE_DIR", "/env")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "trace", b.configs[0].Log.Level)
	assert.Equal(t, "/env", b.configs[0].BaseDir)
}

// TestWithEnv_SetsErrorOnBadValue verifies that conversion failures are
// collected instead of appended.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("TMC_NO_PROMPT", "maybe")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags / withDotEnv ────────────────────────────────────────────────────

// TestWithFlags_NilSetIsNoOp verifies that commands without flags skip the
// layer.
func TestWithFlags_NilSetIsNoOp(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
	assert.Empty(t, b.configs)
}

// TestWithDotEnv_MissingExplicitFile verifies that an explicitly requested
// .env file must exist.
func TestWithDotEnv_MissingExplicitFile(t *testing.T) {
	b := newConfigBuilder().withDotEnv(filepath.Join(t.TempDir(), "none.env"), true)
	assert.Error(t, b.err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_Precedence verifies defaults < .env < env < flags.
func TestGetStructuredConfig_Precedence(t *testing.T) {
	clearEnvVars(t)
	t.Cleanup(func() { clearEnvVars(t) })

	dotenv := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(dotenv, []byte(
		"TMC_BASE_DIR=/dotenv\nTMC_LOG_FORMAT=json\nTMC_REQUEST_TIMEOUT=10s\n",
	), 0o600))
	t.Setenv("TMC_REQUEST_TIMEOUT", "20s")

	fs := pflag.NewFlagSet("tmc", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--env-file", dotenv, "--base-dir", "/flag"}))

	cfg, err := GetStructuredConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level, "default")
	assert.Equal(t, LogFormatJSON, cfg.Log.Format, ".env")
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout, "environment beats .env")
	assert.Equal(t, "/flag", cfg.BaseDir, "flags beat everything")
	assert.Equal(t, dotenv, cfg.EnvFile)
}
