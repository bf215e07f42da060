// Package api provides the HTTP server hosts integrate with: lifecycle hook
// endpoints plus the mounted MCP tool surface.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8090")
	ListenAddr string
}
