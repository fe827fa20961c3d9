package api

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-toomanyconfigs/internal/logger"
	"github.com/MKhiriev/go-toomanyconfigs/internal/utils"
	"github.com/MKhiriev/go-toomanyconfigs/models"
	"github.com/go-resty/resty/v2"
)

type cacheKey struct {
	path   string
	method string
}

// Client issues requests against the routes of a [Config] and caches the
// responses by path and method.
//
// The cache is unbounded and never expires entries on its own; use
// [ForceRefresh] or [Client.ClearCache]. A Client is safe for concurrent use.
type Client struct {
	config  *Config
	http    *utils.HTTPClient
	timeout time.Duration
	logger  *logger.Logger

	mu    sync.Mutex
	cache map[cacheKey]*models.Response
}

// NewClient creates a Client for cfg.
func NewClient(cfg *Config, opts ...ClientOption) *Client {
	c := &Client{
		config: cfg,
		logger: logger.Nop(),
		cache:  make(map[cacheKey]*models.Response),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = utils.NewHTTPClient(c.timeout, c.logger.Component("http"))
	}
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() *Config { return c.config }

// Request sends method to the URL of route. A cached response for the same
// path and method is returned without a round trip unless [ForceRefresh] is
// given. Non-2xx statuses are not errors; inspect the response status.
func (c *Client) Request(ctx context.Context, method, route string, opts ...RequestOption) (*models.Response, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	path, err := c.config.Resolve(route)
	if err != nil {
		return nil, err
	}
	path = formatPath(path, o.format) + o.append
	method = strings.ToUpper(method)
	key := cacheKey{path: path, method: method}

	traceID, ok := utils.GetTraceIDFromContext(ctx)
	if !ok {
		traceID = utils.NewTraceID()
		ctx = utils.WithTraceID(ctx, traceID)
	}
	log := c.logger.With().Str("trace_id", traceID).Str("method", method).Str("path", path).Logger()
	ctx = log.WithContext(ctx)

	if !o.forceRefresh {
		if cached, ok := c.cached(key); ok {
			log.Debug().Msg("cache hit")
			return cached, nil
		}
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeaders(c.headers(o))
	if o.body != nil {
		req.SetBody(o.body)
	}
	if len(o.query) > 0 {
		req.SetQueryParams(o.query)
	}

	log.Debug().Msg("sending request")
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	out := &models.Response{
		Status:   resp.StatusCode(),
		Method:   method,
		Path:     path,
		Headers:  flattenHeaders(resp.Header()),
		Body:     decodeBody(resp),
		CachedAt: time.Now(),
	}
	log.Info().Int("status", out.Status).Dur("elapsed", resp.Time()).Msg("request finished")

	c.mu.Lock()
	c.cache[key] = out
	c.mu.Unlock()
	return out, nil
}

// Get sends a GET request to route.
func (c *Client) Get(ctx context.Context, route string, opts ...RequestOption) (*models.Response, error) {
	return c.Request(ctx, http.MethodGet, route, opts...)
}

// Post sends a POST request to route.
func (c *Client) Post(ctx context.Context, route string, opts ...RequestOption) (*models.Response, error) {
	return c.Request(ctx, http.MethodPost, route, opts...)
}

// Put sends a PUT request to route.
func (c *Client) Put(ctx context.Context, route string, opts ...RequestOption) (*models.Response, error) {
	return c.Request(ctx, http.MethodPut, route, opts...)
}

// Delete sends a DELETE request to route.
func (c *Client) Delete(ctx context.Context, route string, opts ...RequestOption) (*models.Response, error) {
	return c.Request(ctx, http.MethodDelete, route, opts...)
}

// CacheLen returns the number of cached responses.
func (c *Client) CacheLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.cache)
}

func (c *Client) cached(key cacheKey) (*models.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.cache[key]
	return resp, ok
}

func (c *Client) headers(o requestOptions) map[string]string {
	if o.overrideHeaders != nil {
		return maps.Clone(o.overrideHeaders)
	}
	headers := c.config.HeaderMap()
	if headers == nil {
		headers = make(map[string]string, len(o.appendHeaders))
	}
	maps.Copy(headers, o.appendHeaders)
	return headers
}

func formatPath(path string, values map[string]string) string {
	if len(values) == 0 {
		return path
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(path)
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// decodeBody parses JSON bodies and keeps everything else, including JSON
// that fails to parse, as text.
func decodeBody(resp *resty.Response) any {
	raw := resp.Body()
	if !strings.Contains(resp.Header().Get("Content-Type"), "json") {
		return string(raw)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return decoded
}
