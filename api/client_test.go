package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/go-toomanyconfigs/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ts.hits.Add(1)
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/v1/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"auth":%q}`, chi.URLParam(req, "id"), req.Header.Get("Authorization"))
	})
	r.Post("/v1/users", func(w http.ResponseWriter, req *http.Request) {
		var in map[string]any
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		in["created"] = true
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	})
	r.Get("/headers", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"authorization": req.Header.Get("Authorization"),
			"extra":         req.Header.Get("X-Extra"),
			"page":          req.URL.Query().Get("page"),
		})
	})
	r.Get("/text", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	})
	r.Get("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	})

	ts.Server = httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(ts *testServer) *Client {
	cfg := &Config{
		Headers: map[string]string{"authorization": "Bearer token"},
		Base:    ts.URL,
		Routes: map[string]string{
			"user":    "/v1/users/{id}",
			"users":   "/v1/users",
			"headers": "/headers",
			"text":    "/text",
			"broken":  "/broken",
		},
	}
	return NewClient(cfg, WithLogger(zerolog.Nop()))
}

// ── Request ───────────────────────────────────────────────────────────────────

func TestClient_GetDecodesJSON(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(ts)

	resp, err := c.Get(context.Background(), "user", Format(map[string]string{"id": "42"}))
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, http.MethodGet, resp.Method)
	assert.Equal(t, ts.URL+"/v1/users/42", resp.Path)
	assert.Equal(t, map[string]any{"id": "42", "auth": "Bearer token"}, resp.Body)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(ts)

	resp, err := c.Post(context.Background(), "users", Body(map[string]any{"name": "ann"}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, map[string]any{"name": "ann", "created": true}, resp.Body)
}

func TestClient_NonJSONBodiesStayText(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(ts)
	ctx := context.Background()

	text, err := c.Get(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, "hello", text.Body)

	broken, err := c.Get(ctx, "broken")
	require.NoError(t, err)
	assert.Equal(t, "{not json", broken.Body)
}

func TestClient_Headers(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(ts)
	ctx := context.Background()

	appended, err := c.Get(ctx, "headers",
		AppendHeaders(map[string]string{"X-Extra": "yes"}),
		Query(map[string]string{"page": "2"}),
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"authorization": "Bearer token", "extra": "yes", "page": "2"}, appended.Body)

	overridden, err := c.Get(ctx, "headers",
		OverrideHeaders(map[string]string{"X-Extra": "only"}),
		ForceRefresh(),
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"authorization": "", "extra": "only", "page": ""}, overridden.Body)
	assert.Equal(t, map[string]string{"authorization": "Bearer token"}, c.Config().Headers, "config headers are not mutated")
}

func TestClient_AppendAndAbsoluteURL(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(ts)

	resp, err := c.Get(context.Background(), "users", Append("/7"))
	require.NoError(t, err)
	assert.Equal(t, "7", resp.Body.(map[string]any)["id"])

	resp, err = c.Get(context.Background(), ts.URL+"/text")
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Body)
}

func TestClient_KeepsCallerTraceID(t *testing.T) {
	ts := newTestServer(t)
	var buf bytes.Buffer
	c := NewClient(newTestClient(ts).Config(), WithLogger(zerolog.New(&buf)))

	ctx := utils.WithTraceID(context.Background(), "trace-1")
	_, err := c.Get(ctx, "text")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"trace_id":"trace-1"`)
	assert.Contains(t, buf.String(), "response received")
}

func TestClient_MissingRouteSendsNothing(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(ts)

	_, err := c.Get(context.Background(), "orders")
	assert.ErrorIs(t, err, ErrMissingRoute)
	assert.Zero(t, ts.hits.Load())
}

func TestClient_CancelledContext(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(ts)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.CacheLen())
}

// ── Cache ─────────────────────────────────────────────────────────────────────

func TestClient_CacheByPathAndMethod(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(ts)
	ctx := context.Background()

	first, err := c.Get(ctx, "user", Format(map[string]string{"id": "1"}))
	require.NoError(t, err)
	second, err := c.Request(ctx, "get", "user", Format(map[string]string{"id": "1"}))
	require.NoError(t, err)

	assert.Same(t, first, second, "lower-case method hits the same entry")
	assert.EqualValues(t, 1, ts.hits.Load())

	_, err = c.Get(ctx, "user", Format(map[string]string{"id": "2"}))
	require.NoError(t, err)
	assert.EqualValues(t, 2, ts.hits.Load(), "different path misses")

	_, err = c.Post(ctx, "users", Body(map[string]any{}))
	require.NoError(t, err)
	_, err = c.Get(ctx, "users")
	require.NoError(t, err)
	assert.EqualValues(t, 4, ts.hits.Load(), "different method misses")
	assert.Equal(t, 4, c.CacheLen())

	refreshed, err := c.Get(ctx, "user", Format(map[string]string{"id": "1"}), ForceRefresh())
	require.NoError(t, err)
	assert.NotSame(t, first, refreshed)
	assert.EqualValues(t, 5, ts.hits.Load())

	c.ClearCache()
	assert.Zero(t, c.CacheLen())
}
