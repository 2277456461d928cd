// Package core provides the core functionality of the MCP servers.
package core

// Version returns the current version of the MCP servers.
func Version() string {
	return "1.0.0"
}
