package api

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-toomanyconfigs/models"
	"github.com/MKhiriev/go-toomanyconfigs/tomlconfig"
	"github.com/mfridman/interpolate"
)

// SchemaName names the API configuration; the default file is
// apiconfig.toml.
const SchemaName = "APIConfig"

// Schema returns the API configuration schema.
func Schema() *models.Schema {
	headers := models.NewSchema("HeadersConfig",
		models.StringField("authorization").WithDefault("Bearer ${API_KEY}"),
		models.StringField("accept").WithDefault("application/json"),
	)
	routes := models.NewSchema("RoutesConfig",
		models.StringField("base").WithDefault(""),
		models.NestedField("routes", models.NewSchema("Shortcuts")),
	)
	return models.NewSchema(SchemaName,
		models.NestedField("headers", headers),
		models.NestedField("routes", routes),
		models.NestedField("vars", models.NewSchema("VarsConfig")),
	)
}

// Config is the typed view of an API configuration instance.
type Config struct {
	Headers map[string]string
	Base    string
	Routes  map[string]string
	Vars    map[string]string
}

// Load creates the API configuration instance through r and returns its
// typed view with variables substituted.
func Load(ctx context.Context, r *tomlconfig.Reconciler, opts ...tomlconfig.CreateOption) (*Config, error) {
	inst, err := r.Create(ctx, Schema(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load api config: %w", err)
	}
	cfg, err := FromInstance(inst)
	if err != nil {
		return nil, err
	}
	cfg.Substitute()
	return cfg, nil
}

// FromInstance builds a Config from an instance created with [Schema].
// Unset values are skipped and non-string values are formatted.
func FromInstance(inst *tomlconfig.Instance) (*Config, error) {
	headers, ok := inst.Nested("headers")
	if !ok {
		return nil, fmt.Errorf("%w: no headers table", ErrInvalidConfig)
	}
	routes, ok := inst.Nested("routes")
	if !ok {
		return nil, fmt.Errorf("%w: no routes table", ErrInvalidConfig)
	}
	shortcuts, ok := routes.Nested("routes")
	if !ok {
		return nil, fmt.Errorf("%w: no routes.routes table", ErrInvalidConfig)
	}
	vars, ok := inst.Nested("vars")
	if !ok {
		return nil, fmt.Errorf("%w: no vars table", ErrInvalidConfig)
	}

	base, _ := routes.Get("base")
	cfg := &Config{
		Headers: stringFields(headers),
		Routes:  stringFields(shortcuts),
		Vars:    stringFields(vars),
	}
	if !base.IsUnset() {
		cfg.Base = plain(base)
	}
	return cfg, nil
}

func stringFields(inst *tomlconfig.Instance) map[string]string {
	out := make(map[string]string)
	for _, name := range inst.Fields() {
		v, _ := inst.Get(name)
		if v.IsUnset() || v.Kind() == models.KindSchema {
			continue
		}
		out[name] = plain(v)
	}
	return out
}

func plain(v models.Value) string {
	if s, ok := v.StringValue(); ok {
		return s
	}
	return fmt.Sprint(v.Interface())
}

// varsEnv exposes non-empty vars under their upper-cased names.
type varsEnv map[string]string

// Get implements interpolate.Env.
func (e varsEnv) Get(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

func (c *Config) env() varsEnv {
	env := make(varsEnv, len(c.Vars))
	for k, v := range c.Vars {
		if v != "" {
			env[strings.ToUpper(k)] = v
		}
	}
	return env
}

// Substitute replaces ${VAR} and $VAR tokens in header values and the
// route base. VAR is the upper-cased name of a non-empty var. Tokens naming
// anything else are left intact, as is a value that fails to parse.
func (c *Config) Substitute() {
	env := c.env()
	for k, v := range c.Headers {
		c.Headers[k] = env.expand(v)
	}
	if c.Base != "" {
		c.Base = env.expand(c.Base)
	}
}

func (e varsEnv) expand(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	ids, err := interpolate.Identifiers(s)
	if err != nil || !slices.ContainsFunc(ids, func(id string) bool { _, ok := e[id]; return ok }) {
		return s
	}
	out, err := interpolate.Interpolate(e, e.escapeUnknown(s))
	if err != nil {
		return s
	}
	return out
}

// escapeUnknown doubles the $ of every $NAME and ${NAME} token whose name
// is not in e, so interpolation writes the token back verbatim. Escapes
// already present are copied through.
func (e varsEnv) escapeUnknown(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "$$"), strings.HasPrefix(s[i:], `\$`), strings.HasPrefix(s[i:], `\\`):
			b.WriteString(s[i : i+2])
			i++
		case s[i] == '$':
			if name := tokenName(s[i+1:]); name != "" {
				if _, ok := e[name]; !ok {
					b.WriteByte('$')
				}
			}
			b.WriteByte('$')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// tokenName returns the variable named at the start of rest, which follows
// a $: a bare identifier or one closed by a brace. Brace forms carrying an
// operator such as ${NAME:-default} yield "".
func tokenName(rest string) string {
	braced := strings.HasPrefix(rest, "{")
	if braced {
		rest = rest[1:]
	}
	end := 0
	for n, r := range rest {
		if n == 0 && !unicode.IsLetter(r) {
			return ""
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' {
			break
		}
		end = n + utf8.RuneLen(r)
	}
	if end == 0 {
		return ""
	}
	if braced && !strings.HasPrefix(rest[end:], "}") {
		return ""
	}
	return rest[:end]
}

// Resolve returns the URL of route: the base followed by the route's path.
// Absolute URLs pass through unchanged; any other undeclared name yields
// ErrMissingRoute.
func (c *Config) Resolve(route string) (string, error) {
	if p, ok := c.Routes[route]; ok {
		return c.Base + p, nil
	}
	if strings.Contains(route, "://") {
		return route, nil
	}
	return "", fmt.Errorf("%w: %s", ErrMissingRoute, route)
}

// HeaderMap returns a copy of the configured headers.
func (c *Config) HeaderMap() map[string]string {
	return maps.Clone(c.Headers)
}
