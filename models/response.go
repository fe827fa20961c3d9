// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Response is the outcome of an API request issued through the request
// helper. It is also the unit stored in the response cache.
type Response struct {
	// Status is the HTTP status code.
	Status int `json:"status"`
	// Method is the upper-cased HTTP method of the request.
	Method string `json:"method"`
	// Path is the fully resolved request URL.
	Path string `json:"path"`
	// Headers holds the response headers, first value per name.
	Headers map[string]string `json:"headers"`
	// Body is the decoded JSON payload when the response declared a JSON
	// content type, otherwise the raw text.
	Body any `json:"body"`
	// CachedAt is when the response was stored in the cache.
	CachedAt time.Time `json:"cached_at"`
}

// OK reports whether Status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
