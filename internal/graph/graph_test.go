// ABOUTME: Tests for the tag co-occurrence graph
// ABOUTME: Validates node and edge sets, ordering and neighbors
package graph

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/harper/quietwins/internal/db"
)

func sampleEntries() []db.Entry {
	return []db.Entry{
		{ID: 1, Text: "Jogged in the park", Tags: "jog,park,exercise,health"},
		{ID: 2, Text: "Had a wonderful dinner with family", Tags: "dinner,family,relationships"},
	}
}

func TestBuildExample(t *testing.T) {
	g := Build(sampleEntries())

	wantNodes := []string{"dinner", "exercise", "family", "health", "jog", "park", "relationships"}
	if !reflect.DeepEqual(g.Nodes, wantNodes) {
		t.Errorf("nodes = %v, want %v", g.Nodes, wantNodes)
	}

	// 4 tags -> 6 edges, 3 tags -> 3 edges
	if len(g.Edges) != 9 {
		t.Errorf("got %d edges, want 9: %v", len(g.Edges), g.Edges)
	}

	has := make(map[Edge]bool)
	for _, e := range g.Edges {
		has[e] = true
	}
	for _, want := range []Edge{{"exercise", "health"}, {"jog", "park"}, {"dinner", "family"}} {
		if !has[want] {
			t.Errorf("missing edge %v", want)
		}
	}

	first := map[string]bool{"jog": true, "park": true, "exercise": true, "health": true}
	for _, e := range g.Edges {
		if first[e.Source] != first[e.Target] {
			t.Errorf("edge %v crosses entries", e)
		}
	}
}

func TestBuildInvariants(t *testing.T) {
	entries := []db.Entry{
		{Tags: "b, a, c"},
		{Tags: "c, a"},
		{Tags: "a, a, d"},
		{Tags: "[\"x\", \"y\"]"},
	}
	g := Build(entries)

	seen := make(map[Edge]bool)
	for _, e := range g.Edges {
		if e.Source == e.Target {
			t.Errorf("self edge %v", e)
		}
		if !(e.Source < e.Target) {
			t.Errorf("edge %v not canonical", e)
		}
		if seen[e] {
			t.Errorf("duplicate edge %v", e)
		}
		seen[e] = true
	}
	if !seen[Edge{"x", "y"}] {
		t.Errorf("bracketed tags not sanitized: %v", g.Edges)
	}
}

func TestBuildOrderInvariant(t *testing.T) {
	entries := []db.Entry{
		{Tags: "a, b"},
		{Tags: "b, c, d"},
		{Tags: "e"},
		{Tags: "d, a"},
		{Tags: ""},
	}
	want := Build(entries)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]db.Entry(nil), entries...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Build(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation changed graph: got %v, want %v", got, want)
		}
	}
}

func TestBuildDegenerate(t *testing.T) {
	t.Run("no entries", func(t *testing.T) {
		g := Build(nil)
		if len(g.Nodes) != 0 || len(g.Edges) != 0 {
			t.Errorf("got %v, want empty graph", g)
		}
		if g.Nodes == nil || g.Edges == nil {
			t.Error("expected non-nil slices for JSON output")
		}
	})

	t.Run("single tag", func(t *testing.T) {
		g := Build([]db.Entry{{Tags: "solo"}})
		if !reflect.DeepEqual(g.Nodes, []string{"solo"}) || len(g.Edges) != 0 {
			t.Errorf("got %v", g)
		}
	})

	t.Run("no tags", func(t *testing.T) {
		g := Build([]db.Entry{{Tags: " , "}})
		if len(g.Nodes) != 0 || len(g.Edges) != 0 {
			t.Errorf("got %v", g)
		}
	})
}

func TestNeighbors(t *testing.T) {
	g := Build(sampleEntries())
	got := g.Neighbors("park")
	want := []string{"exercise", "health", "jog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
