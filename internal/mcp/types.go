// ABOUTME: Wire types shared by MCP tools and resources
// ABOUTME: Converts stored wins into JSON-friendly shapes with tag lists
package mcp

import (
	"github.com/harper/quietwins/internal/chains"
	"github.com/harper/quietwins/internal/db"
	"github.com/harper/quietwins/internal/tagging"
)

// WinData is a win as exposed to MCP clients.
type WinData struct {
	ID        int64    `json:"id" jsonschema:"Win ID"`
	Date      string   `json:"date" jsonschema:"Calendar date of the win (YYYY-MM-DD)"`
	Text      string   `json:"text" jsonschema:"What happened"`
	Tags      []string `json:"tags" jsonschema:"Tags on the win"`
	CreatedAt int64    `json:"created_at" jsonschema:"Unix time the win was logged"`
	ChainID   *int     `json:"chain_id,omitempty" jsonschema:"Chain the win belongs to, absent when unchained"`
}

// DeletedWinData is a soft-deleted win.
type DeletedWinData struct {
	ID        int64    `json:"id" jsonschema:"Win ID, reused on restore"`
	Date      string   `json:"date" jsonschema:"Calendar date of the win (YYYY-MM-DD)"`
	Text      string   `json:"text" jsonschema:"What happened"`
	Tags      []string `json:"tags" jsonschema:"Tags on the win"`
	DeletedAt int64    `json:"deleted_at" jsonschema:"Unix time the win was deleted"`
}

func toWinData(e db.Entry) WinData {
	return WinData{
		ID:        e.ID,
		Date:      e.Date,
		Text:      e.Text,
		Tags:      tagging.ParseTagSet(e.Tags).Sorted(),
		CreatedAt: e.CreatedAt,
	}
}

func toWinList(entries []db.Entry) []WinData {
	out := make([]WinData, 0, len(entries))
	for _, e := range entries {
		out = append(out, toWinData(e))
	}
	return out
}

func toDeletedList(entries []db.DeletedEntry) []DeletedWinData {
	out := make([]DeletedWinData, 0, len(entries))
	for _, e := range entries {
		out = append(out, DeletedWinData{
			ID:        e.ID,
			Date:      e.Date,
			Text:      e.Text,
			Tags:      tagging.ParseTagSet(e.Tags).Sorted(),
			DeletedAt: e.DeletedAt,
		})
	}
	return out
}

func toChainedList(grouped []chains.ChainedEntry) []WinData {
	out := make([]WinData, 0, len(grouped))
	for _, c := range grouped {
		w := toWinData(c.Entry)
		w.ChainID = c.ChainID
		out = append(out, w)
	}
	return out
}
