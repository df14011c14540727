// ABOUTME: Groups wins that share a derived chain key
// ABOUTME: Keys come from entity tags, then the longest word in the text
package chains

import (
	"strings"
	"unicode/utf8"

	"github.com/harper/quietwins/internal/db"
	"github.com/harper/quietwins/internal/tagging"
)

// minKeyWordLen is the length a word must exceed to serve as a chain key.
const minKeyWordLen = 5

// entityLabels are checked in priority order.
var entityLabels = []string{"work_of_art", "product", "org"}

// ChainedEntry is an entry with its chain assignment. ChainID is nil for
// entries that belong to no chain.
type ChainedEntry struct {
	db.Entry
	ChainID *int `json:"chain_id"`
}

// Chain returns the chain index and whether the entry is chained.
func (c ChainedEntry) Chain() (int, bool) {
	if c.ChainID == nil {
		return 0, false
	}
	return *c.ChainID, true
}

// Key extracts the chain key from a win's text and stored tags. It is
// the first entity label present in tags, otherwise the longest word of
// text longer than five characters, otherwise "".
func Key(text, tags string) string {
	present := make(map[string]bool)
	for _, t := range tagging.SplitTags(tags) {
		present[t] = true
	}
	for _, label := range entityLabels {
		if present[label] {
			return label
		}
	}

	longest := ""
	longestLen := minKeyWordLen
	for _, w := range strings.Fields(text) {
		if n := utf8.RuneCountInString(w); n > longestLen {
			longest, longestLen = w, n
		}
	}
	return longest
}

// Group partitions entries into chains of identical non-empty keys.
// Chains are numbered from 0 in discovery order following the input
// order. The result lists each chain's members in turn, then unchained
// entries in input order.
func Group(entries []db.Entry) []ChainedEntry {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = Key(e.Text, e.Tags)
	}

	assigned := make([]bool, len(entries))
	out := make([]ChainedEntry, 0, len(entries))
	chainID := 0

	for i := range entries {
		if assigned[i] || keys[i] == "" {
			continue
		}
		id := chainID
		chainID++

		assigned[i] = true
		out = append(out, ChainedEntry{Entry: entries[i], ChainID: &id})
		for j := range entries {
			if assigned[j] || keys[j] != keys[i] {
				continue
			}
			assigned[j] = true
			out = append(out, ChainedEntry{Entry: entries[j], ChainID: &id})
		}
	}

	for i, e := range entries {
		if !assigned[i] {
			out = append(out, ChainedEntry{Entry: e})
		}
	}
	return out
}

// Chains returns only the chained groups, in chain order.
func Chains(grouped []ChainedEntry) [][]db.Entry {
	var out [][]db.Entry
	for _, c := range grouped {
		id, ok := c.Chain()
		if !ok {
			continue
		}
		for len(out) <= id {
			out = append(out, nil)
		}
		out[id] = append(out[id], c.Entry)
	}
	return out
}
