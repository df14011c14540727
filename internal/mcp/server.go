// ABOUTME: MCP server implementation for quietwins
// ABOUTME: Provides tools and resources for AI assistants to log and browse wins
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/quietwins/internal/wins"
)

// Server wraps the MCP server with quietwins-specific functionality.
type Server struct {
	mcpServer *mcp.Server
	svc       *wins.Service
}

// NewServer creates a new quietwins MCP server backed by svc.
func NewServer(svc *wins.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "quietwins",
		Version: wins.Version,
	}

	server := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		svc:       svc,
	}

	// Register components
	server.registerPrompts()
	server.registerTools()
	server.registerResources()

	return server
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}
