// ABOUTME: MCP prompt definitions for quietwins
// ABOUTME: Provides static context to AI assistants about logging wins
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "quietwins-getting-started",
		Description: "Introduction to quietwins and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		content := `Quiet Wins is a journal of small positive things the user did.

When to log a win:
- User finished something, however small (a workout, a draft, a call with family)
- User mentions a good moment they want to remember
- User asks to record or track progress

How tagging works:
- Tags are inferred from the text by keyword rules, so plain sentences are enough
- Extra tags can be passed and are merged with inferred ones
- If a tag looks like a typo of an existing tag, add_win reports a hint

Browsing:
- list_wins shows recent wins; chains=true groups related wins
- tag_graph shows which tags appear together
- Deleted wins stay in the trash until purged and can be restored

Keep wins short and concrete. Celebrate them.`

		result := &mcp.GetPromptResult{
			Description: "Getting started with quietwins",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: content,
					},
				},
			},
		}

		return result, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
