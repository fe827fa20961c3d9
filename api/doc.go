// Package api drives HTTP APIs from a TOML configuration.
//
// The configuration file (apiconfig.toml by default) holds three tables:
//
//	[headers]
//	authorization = "Bearer ${API_KEY}"
//	accept = "application/json"
//
//	[routes]
//	base = "https://api.example.com"
//
//	[routes.routes]
//	users = "/v1/users"
//
//	[vars]
//	api_key = "..."
//
// Variables are substituted into header values and the route base, then a
// [Client] issues requests by route name and caches the responses.
package api
