// ABOUTME: Tests for tag string parsing, formatting and suggestions
// ABOUTME: Validates sanitizing of stray punctuation and deduplication
package tagging

import (
	"reflect"
	"testing"
)

func TestParseTagSet(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain", "jog,park,exercise", []string{"exercise", "jog", "park"}},
		{"spaces", " a ,  b,c ", []string{"a", "b", "c"}},
		{"bracketed", `["work", "project"]`, []string{"project", "work"}},
		{"duplicates", "a, a, b", []string{"a", "b"}},
		{"empty tokens", ",,a,, ,", []string{"a"}},
		{"empty", "", []string{}},
		{"multi word", "casual recreation, health", []string{"casual recreation", "health"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTagSet(tt.raw).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTagSet(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatTags(t *testing.T) {
	got := FormatTags("work", "", "admin", "work")
	if got != "admin, work" {
		t.Errorf("got %q, want %q", got, "admin, work")
	}
	if got := FormatTags(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestParseUserTags(t *testing.T) {
	got := ParseUserTags("Work, PROJECT", "work", " ", "deep focus")
	want := []string{"work", "project", "deep focus"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMergeTags(t *testing.T) {
	t.Run("union with user tags", func(t *testing.T) {
		got := MergeTags([]string{"milestone", "work"}, NewTagSet("work", "project"))
		if got != "milestone, project, work" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("inferred only", func(t *testing.T) {
		got := MergeTags(nil, NewTagSet("health", "walk"))
		if got != "health, walk" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("round trips through ParseTagSet", func(t *testing.T) {
		stored := MergeTags([]string{"a"}, NewTagSet("b", "casual recreation"))
		got := ParseTagSet(stored).Sorted()
		want := []string{"a", "b", "casual recreation"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func TestDidYouMean(t *testing.T) {
	known := []string{"exercise", "health", "relationships"}

	if got := DidYouMean("excercise", known); got != "exercise" {
		t.Errorf("got %q, want exercise", got)
	}
	if got := DidYouMean("Health", known); got != "" {
		t.Errorf("known tag should have no suggestion, got %q", got)
	}
	if got := DidYouMean("gardening", known); got != "" {
		t.Errorf("got %q, want no suggestion", got)
	}
}
