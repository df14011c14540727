// ABOUTME: MCP tool implementations for quietwins
// ABOUTME: Logging, editing and browsing wins plus tag graph and chain views
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/quietwins/internal/chains"
	"github.com/harper/quietwins/internal/graph"
	"github.com/harper/quietwins/internal/wins"
)

// AddWinInput defines the input for add_win tool.
type AddWinInput struct {
	Text string   `json:"text" jsonschema:"What the user accomplished"`
	Date string   `json:"date,omitempty" jsonschema:"Date of the win, defaults to today"`
	Tags []string `json:"tags,omitempty" jsonschema:"Optional tags, merged with inferred tags"`
}

// AddWinOutput defines the output for add_win tool.
type AddWinOutput struct {
	Win   WinData           `json:"win" jsonschema:"The stored win"`
	Hints map[string]string `json:"hints,omitempty" jsonschema:"Unknown tags mapped to a similar existing tag"`
}

// ListWinsInput defines the input for list_wins tool.
type ListWinsInput struct {
	Limit  int  `json:"limit,omitempty" jsonschema:"Maximum number of wins to return (default 20, negative for all)"`
	Chains bool `json:"chains,omitempty" jsonschema:"Group wins into chains"`
}

// ListWinsOutput defines the output for list_wins tool.
type ListWinsOutput struct {
	Wins  []WinData `json:"wins"`
	Count int       `json:"count"`
}

// UpdateWinInput defines the input for update_win tool.
type UpdateWinInput struct {
	ID   int64    `json:"id" jsonschema:"Win ID to update"`
	Date string   `json:"date,omitempty" jsonschema:"New date, unchanged when empty"`
	Text string   `json:"text,omitempty" jsonschema:"New text, unchanged when empty"`
	Tags []string `json:"tags,omitempty" jsonschema:"Replacement tags, unchanged when omitted"`
}

// WinIDInput identifies a single win.
type WinIDInput struct {
	ID int64 `json:"id" jsonschema:"Win ID"`
}

// WinOutput wraps a single win.
type WinOutput struct {
	Win WinData `json:"win"`
}

// StatusOutput reports the outcome of delete and restore.
type StatusOutput struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// NoInput is used by tools that take no arguments.
type NoInput struct{}

// DeletedWinsOutput defines the output for list_deleted_wins tool.
type DeletedWinsOutput struct {
	Wins  []DeletedWinData `json:"wins"`
	Count int              `json:"count"`
}

// ClassifyInput defines the input for classify_text tool.
type ClassifyInput struct {
	Text string `json:"text" jsonschema:"Text to classify"`
}

// ClassifyOutput defines the output for classify_text tool.
type ClassifyOutput struct {
	Tags []string `json:"tags" jsonschema:"Inferred tags, never empty"`
}

// ChainsOutput defines the output for win_chains tool.
type ChainsOutput struct {
	Chains    [][]WinData `json:"chains" jsonschema:"Groups of related wins"`
	Unchained []WinData   `json:"unchained" jsonschema:"Wins that belong to no chain"`
}

const defaultListLimit = 20

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_win",
		Description: "Log a win (a small positive thing the user did). Tags are inferred from the text and merged with any tags given.",
	}, s.handleAddWin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_wins",
		Description: "List recent wins, newest first. Set chains to group related wins together.",
	}, s.handleListWins)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_win",
		Description: "Change the date, text or tags of an existing win. Tags are not re-inferred.",
	}, s.handleUpdateWin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_win",
		Description: "Move a win to the trash. It can be restored until it is purged.",
	}, s.handleDeleteWin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "restore_win",
		Description: "Restore a deleted win with its original ID and timestamps.",
	}, s.handleRestoreWin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_deleted_wins",
		Description: "List wins in the trash, most recently deleted first.",
	}, s.handleListDeletedWins)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "classify_text",
		Description: "Show the tags quietwins would infer for a piece of text without saving anything.",
	}, s.handleClassifyText)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "tag_graph",
		Description: "Tag co-occurrence graph over all active wins: nodes are tags, edges join tags used on the same win.",
	}, s.handleTagGraph)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "win_chains",
		Description: "Group active wins into chains of related wins sharing a key entity or distinctive word.",
	}, s.handleWinChains)
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// handleAddWin implements the add_win tool.
func (s *Server) handleAddWin(ctx context.Context, req *mcp.CallToolRequest, input AddWinInput) (*mcp.CallToolResult, AddWinOutput, error) {
	hints, err := s.svc.TagHints(ctx, input.Tags)
	if err != nil {
		return nil, AddWinOutput{}, err
	}

	entry, err := s.svc.Add(ctx, wins.AddParams{Date: input.Date, Text: input.Text, Tags: input.Tags})
	if err != nil {
		return nil, AddWinOutput{}, err
	}

	output := AddWinOutput{Win: toWinData(*entry)}
	if len(hints) > 0 {
		output.Hints = hints
	}

	msg := fmt.Sprintf("Win logged (ID: %d) with tags: %s", entry.ID, entry.Tags)
	if len(hints) > 0 {
		msg += "\n" + formatHints(hints)
	}
	return textResult("%s", msg), output, nil
}

func formatHints(hints map[string]string) string {
	tags := make([]string, 0, len(hints))
	for t := range hints {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	var sb strings.Builder
	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("Tag %q is new. Did you mean %q?\n", t, hints[t]))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// handleListWins implements the list_wins tool.
func (s *Server) handleListWins(ctx context.Context, req *mcp.CallToolRequest, input ListWinsInput) (*mcp.CallToolResult, ListWinsOutput, error) {
	limit := input.Limit
	switch {
	case limit == 0:
		limit = defaultListLimit
	case limit < 0:
		limit = 0
	}

	var list []WinData
	if input.Chains {
		grouped, err := s.svc.Chained(ctx)
		if err != nil {
			return nil, ListWinsOutput{}, err
		}
		list = toChainedList(grouped)
		if limit > 0 && len(list) > limit {
			list = list[:limit]
		}
	} else {
		entries, err := s.svc.Active(ctx, limit)
		if err != nil {
			return nil, ListWinsOutput{}, err
		}
		list = toWinList(entries)
	}

	output := ListWinsOutput{Wins: list, Count: len(list)}
	return textResult("Found %d wins", len(list)), output, nil
}

// handleUpdateWin implements the update_win tool.
func (s *Server) handleUpdateWin(ctx context.Context, req *mcp.CallToolRequest, input UpdateWinInput) (*mcp.CallToolResult, WinOutput, error) {
	entry, err := s.svc.Update(ctx, input.ID, wins.UpdateParams{Date: input.Date, Text: input.Text, Tags: input.Tags})
	if err != nil {
		return nil, WinOutput{}, err
	}
	return textResult("Win %d updated", entry.ID), WinOutput{Win: toWinData(*entry)}, nil
}

// handleDeleteWin implements the delete_win tool.
func (s *Server) handleDeleteWin(ctx context.Context, req *mcp.CallToolRequest, input WinIDInput) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.svc.Delete(ctx, input.ID); err != nil {
		return nil, StatusOutput{}, err
	}
	return textResult("Win %d moved to trash", input.ID), StatusOutput{ID: input.ID, Status: "deleted"}, nil
}

// handleRestoreWin implements the restore_win tool.
func (s *Server) handleRestoreWin(ctx context.Context, req *mcp.CallToolRequest, input WinIDInput) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.svc.Restore(ctx, input.ID); err != nil {
		return nil, StatusOutput{}, err
	}
	return textResult("Win %d restored", input.ID), StatusOutput{ID: input.ID, Status: "restored"}, nil
}

// handleListDeletedWins implements the list_deleted_wins tool.
func (s *Server) handleListDeletedWins(ctx context.Context, req *mcp.CallToolRequest, input NoInput) (*mcp.CallToolResult, DeletedWinsOutput, error) {
	entries, err := s.svc.Deleted(ctx)
	if err != nil {
		return nil, DeletedWinsOutput{}, err
	}
	list := toDeletedList(entries)
	return textResult("%d wins in trash", len(list)), DeletedWinsOutput{Wins: list, Count: len(list)}, nil
}

// handleClassifyText implements the classify_text tool.
func (s *Server) handleClassifyText(ctx context.Context, req *mcp.CallToolRequest, input ClassifyInput) (*mcp.CallToolResult, ClassifyOutput, error) {
	tags := s.svc.Classify(ctx, input.Text)
	return textResult("%s", strings.Join(tags, ", ")), ClassifyOutput{Tags: tags}, nil
}

// handleTagGraph implements the tag_graph tool.
func (s *Server) handleTagGraph(ctx context.Context, req *mcp.CallToolRequest, input NoInput) (*mcp.CallToolResult, graph.TagGraph, error) {
	g, err := s.svc.Graph(ctx)
	if err != nil {
		return nil, graph.TagGraph{}, err
	}
	return textResult("%d tags, %d edges", len(g.Nodes), len(g.Edges)), g, nil
}

// handleWinChains implements the win_chains tool.
func (s *Server) handleWinChains(ctx context.Context, req *mcp.CallToolRequest, input NoInput) (*mcp.CallToolResult, ChainsOutput, error) {
	grouped, err := s.svc.Chained(ctx)
	if err != nil {
		return nil, ChainsOutput{}, err
	}
	output := buildChainsOutput(grouped)
	return textResult("%d chains, %d unchained wins", len(output.Chains), len(output.Unchained)), output, nil
}

func buildChainsOutput(grouped []chains.ChainedEntry) ChainsOutput {
	output := ChainsOutput{
		Chains:    [][]WinData{},
		Unchained: []WinData{},
	}
	for _, group := range chains.Chains(grouped) {
		output.Chains = append(output.Chains, toWinList(group))
	}
	for _, c := range grouped {
		if _, ok := c.Chain(); !ok {
			output.Unchained = append(output.Unchained, toWinData(c.Entry))
		}
	}
	return output
}
