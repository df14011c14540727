// ABOUTME: MCP resource implementations for quietwins
// ABOUTME: Exposes recent wins, the tag graph, chains and today's wins
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentWinsURI = "quietwins://recent-wins"
	tagGraphURI   = "quietwins://tag-graph"
	chainsURI     = "quietwins://chains"
	todayURI      = "quietwins://today"

	recentWinsLimit = 10
)

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentWinsURI,
		Name:        "Recent Wins",
		Description: "Last 10 wins with tags",
		MIMEType:    "application/json",
	}, s.handleRecentWins)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         tagGraphURI,
		Name:        "Tag Graph",
		Description: "Tag co-occurrence graph across all active wins",
		MIMEType:    "application/json",
	}, s.handleTagGraphResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         chainsURI,
		Name:        "Win Chains",
		Description: "Active wins grouped into chains of related wins",
		MIMEType:    "application/json",
	}, s.handleChainsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today",
		Description: "Wins logged for today",
		MIMEType:    "text/markdown",
	}, s.handleToday)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

// handleRecentWins implements the recent-wins resource.
func (s *Server) handleRecentWins(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.svc.Active(ctx, recentWinsLimit)
	if err != nil {
		return nil, err
	}
	return jsonResource(recentWinsURI, toWinList(entries))
}

// handleTagGraphResource implements the tag-graph resource.
func (s *Server) handleTagGraphResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	g, err := s.svc.Graph(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(tagGraphURI, g)
}

// handleChainsResource implements the chains resource.
func (s *Server) handleChainsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	grouped, err := s.svc.Chained(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(chainsURI, buildChainsOutput(grouped))
}

// handleToday implements the today resource.
func (s *Server) handleToday(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.svc.Today(ctx)
	if err != nil {
		return nil, err
	}

	var summary strings.Builder
	summary.WriteString("# Today's Wins\n\n")
	for _, e := range entries {
		if e.Tags != "" {
			summary.WriteString(fmt.Sprintf("- %s (%s)\n", e.Text, e.Tags))
		} else {
			summary.WriteString(fmt.Sprintf("- %s\n", e.Text))
		}
	}
	if len(entries) == 0 {
		summary.WriteString("No wins logged today yet.\n")
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      todayURI,
				MIMEType: "text/markdown",
				Text:     summary.String(),
			},
		},
	}, nil
}
