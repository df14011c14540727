// ABOUTME: Tag co-occurrence graph built from a snapshot of wins
// ABOUTME: Nodes are distinct tags, edges join tags that share a win
package graph

import (
	"sort"

	"github.com/harper/quietwins/internal/db"
	"github.com/harper/quietwins/internal/tagging"
)

// Edge is an unordered tag pair stored with Source < Target.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewEdge returns the canonical edge for a and b.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{Source: a, Target: b}
}

// TagGraph is the co-occurrence graph. Nodes and edges are sorted.
type TagGraph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// Build derives the tag graph from entries. Edge repetition across
// entries collapses to one edge; no weights are kept.
func Build(entries []db.Entry) TagGraph {
	nodes := make(tagging.TagSet)
	edges := make(map[Edge]struct{})

	for _, e := range entries {
		tags := tagging.ParseTagSet(e.Tags).Sorted()
		nodes.Add(tags...)
		for i := 0; i < len(tags); i++ {
			for j := i + 1; j < len(tags); j++ {
				edges[NewEdge(tags[i], tags[j])] = struct{}{}
			}
		}
	}

	g := TagGraph{
		Nodes: nodes.Sorted(),
		Edges: make([]Edge, 0, len(edges)),
	}
	for e := range edges {
		g.Edges = append(g.Edges, e)
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Source != g.Edges[j].Source {
			return g.Edges[i].Source < g.Edges[j].Source
		}
		return g.Edges[i].Target < g.Edges[j].Target
	})
	return g
}

// Neighbors returns the tags adjacent to tag, sorted.
func (g TagGraph) Neighbors(tag string) []string {
	var out []string
	for _, e := range g.Edges {
		switch tag {
		case e.Source:
			out = append(out, e.Target)
		case e.Target:
			out = append(out, e.Source)
		}
	}
	sort.Strings(out)
	return out
}
