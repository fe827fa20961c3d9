package api

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-toomanyconfigs/prompt"
	"github.com/MKhiriev/go-toomanyconfigs/tomlconfig"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReconciler(t *testing.T, fsys afero.Fs) *tomlconfig.Reconciler {
	t.Helper()
	r, err := tomlconfig.New(
		tomlconfig.WithFs(fsys),
		tomlconfig.WithDir("/proj"),
		tomlconfig.WithPrompter(prompt.New(prompt.NewScriptedSource())),
		tomlconfig.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	return r
}

// ── Load ──────────────────────────────────────────────────────────────────────

func TestLoad_WritesDefaultsToFreshFile(t *testing.T) {
	fsys := afero.NewMemMapFs()

	cfg, err := Load(context.Background(), newReconciler(t, fsys))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"authorization": "Bearer ${API_KEY}",
		"accept":        "application/json",
	}, cfg.Headers)
	assert.Empty(t, cfg.Base)
	assert.Empty(t, cfg.Routes)
	assert.Empty(t, cfg.Vars)

	raw, err := afero.ReadFile(fsys, "/proj/apiconfig.toml")
	require.NoError(t, err)
	doc := map[string]any{}
	require.NoError(t, toml.Unmarshal(raw, &doc))
	assert.Equal(t, map[string]any{
		"headers": map[string]any{"authorization": "Bearer ${API_KEY}", "accept": "application/json"},
		"routes":  map[string]any{"base": "", "routes": map[string]any{}},
		"vars":    map[string]any{},
	}, doc)
}

func TestLoad_SubstitutesVars(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := `
[headers]
authorization = "Bearer ${API_KEY}"
accept = "application/json"
x_tenant = "$TENANT"
x_missing = "${NOT_SET}"

[routes]
base = "https://$HOST/v1"

[routes.routes]
users = "/users"
user = "/users/{id}"

[vars]
api_key = "secret"
host = "example.com"
tenant = ""
port = 8443
`
	require.NoError(t, afero.WriteFile(fsys, "/proj/apiconfig.toml", []byte(content), 0o644))

	cfg, err := Load(context.Background(), newReconciler(t, fsys))
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", cfg.Headers["authorization"])
	assert.Equal(t, "https://example.com/v1", cfg.Base)
	assert.Equal(t, "$TENANT", cfg.Headers["x_tenant"], "empty vars are not substituted")
	assert.Equal(t, "${NOT_SET}", cfg.Headers["x_missing"])
	assert.Equal(t, "8443", cfg.Vars["port"])
	assert.Equal(t, map[string]string{"users": "/users", "user": "/users/{id}"}, cfg.Routes)
}

func TestSubstitute_LeavesUnknownTokensIntact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "known bare and braced", in: "$API_KEY:${API_KEY}", want: "abc:abc"},
		{name: "unknown only", in: "${OTHER} $OTHER", want: "${OTHER} $OTHER"},
		{name: "unknown next to known", in: "${OTHER} $OTHER $API_KEY", want: "${OTHER} $OTHER abc"},
		{name: "unknown prefix of known", in: "$API $API_KEY", want: "$API abc"},
		{name: "default operator on unknown", in: "${OTHER:-x} $API_KEY", want: "x abc"},
		{name: "escaped dollar", in: "$$API_KEY and $API_KEY", want: "$API_KEY and abc"},
		{name: "unparsable", in: "cost $5 for $API_KEY", want: "cost $5 for $API_KEY"},
		{name: "no tokens", in: "plain", want: "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Headers: map[string]string{"h": tt.in},
				Base:    tt.in,
				Vars:    map[string]string{"api_key": "abc"},
			}
			cfg.Substitute()

			assert.Equal(t, tt.want, cfg.Headers["h"])
			assert.Equal(t, tt.want, cfg.Base)
		})
	}
}

func TestFromInstance_RejectsForeignSchema(t *testing.T) {
	fsys := afero.NewMemMapFs()
	r := newReconciler(t, fsys)

	inst, err := r.Create(context.Background(), Schema().Fields[0].Schema, tomlconfig.PromptEmptyFields(false))
	require.NoError(t, err)

	_, err = FromInstance(inst)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// ── Resolve ───────────────────────────────────────────────────────────────────

func TestConfig_Resolve(t *testing.T) {
	cfg := &Config{
		Base:   "https://api.example.com",
		Routes: map[string]string{"users": "/v1/users"},
	}

	tests := []struct {
		name    string
		route   string
		want    string
		wantErr error
	}{
		{name: "declared route", route: "users", want: "https://api.example.com/v1/users"},
		{name: "absolute url", route: "https://other.example.com/x", want: "https://other.example.com/x"},
		{name: "undeclared route", route: "orders", wantErr: ErrMissingRoute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.Resolve(tt.route)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
