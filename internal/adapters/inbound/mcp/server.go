package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCamelgenMCPServer creates an MCP server exposing the camelgen
// validations and the scaffold operation. Relative paths in tool arguments
// resolve against workDir.
func NewCamelgenMCPServer(workDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"camelgen",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, workDir)
	registerResources(s)

	return s
}
