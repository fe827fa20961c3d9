package api

import (
	"time"

	"github.com/MKhiriev/go-toomanyconfigs/internal/logger"
	"github.com/MKhiriev/go-toomanyconfigs/internal/utils"
	"github.com/rs/zerolog"
)

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.Wrap(l).Component("api")
	}
}

// WithTimeout bounds every request. Zero means no timeout beyond the
// request context.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *utils.HTTPClient) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	append          string
	format          map[string]string
	forceRefresh    bool
	appendHeaders   map[string]string
	overrideHeaders map[string]string
	body            any
	query           map[string]string
}

// Append adds suffix to the resolved path.
func Append(suffix string) RequestOption {
	return func(o *requestOptions) {
		o.append = suffix
	}
}

// Format fills {name} placeholders of the resolved path.
func Format(values map[string]string) RequestOption {
	return func(o *requestOptions) {
		o.format = values
	}
}

// ForceRefresh skips the response cache. The fresh response still replaces
// the cached one.
func ForceRefresh() RequestOption {
	return func(o *requestOptions) {
		o.forceRefresh = true
	}
}

// AppendHeaders adds headers on top of the configured ones.
func AppendHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		o.appendHeaders = headers
	}
}

// OverrideHeaders replaces the configured headers entirely.
func OverrideHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		o.overrideHeaders = headers
	}
}

// Body sets the request body. Structs and maps are sent as JSON.
func Body(body any) RequestOption {
	return func(o *requestOptions) {
		o.body = body
	}
}

// Query sets URL query parameters.
func Query(params map[string]string) RequestOption {
	return func(o *requestOptions) {
		o.query = params
	}
}
