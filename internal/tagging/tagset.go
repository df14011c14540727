// ABOUTME: Tag set type plus parsing and formatting of stored tag strings
// ABOUTME: Stored tags are a denormalized comma-separated list on each win
package tagging

import (
	"sort"
	"strings"
)

// tagCutset is stripped from both ends of every token when parsing.
const tagCutset = " \t\r\n[]\"'"

// TagSet is a set of distinct, non-empty tags.
type TagSet map[string]struct{}

// NewTagSet builds a set from tags, skipping empty ones.
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	s.Add(tags...)
	return s
}

// Add inserts tags into the set. Empty tags are ignored.
func (s TagSet) Add(tags ...string) {
	for _, t := range tags {
		if t == "" {
			continue
		}
		s[t] = struct{}{}
	}
}

// Union adds every tag of other to s.
func (s TagSet) Union(other TagSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Contains reports whether tag is in the set.
func (s TagSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of tags.
func (s TagSet) Len() int {
	return len(s)
}

// Sorted returns the tags in lexicographic order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String renders the set in storage format.
func (s TagSet) String() string {
	return strings.Join(s.Sorted(), ", ")
}

// SplitTags splits a raw tag string on commas and strips whitespace,
// brackets and quotes from each token. Empty tokens are dropped; order
// and duplicates are preserved.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, tagCutset)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseTagSet returns the distinct tags of a stored tag string.
func ParseTagSet(raw string) TagSet {
	return NewTagSet(SplitTags(raw)...)
}

// NormalizeTag lowercases and trims a user supplied tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.Trim(tag, tagCutset))
}

// ParseUserTags splits user input into normalized tags. Duplicates are
// removed case-insensitively, keeping first occurrence order.
func ParseUserTags(inputs ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, in := range inputs {
		for _, t := range strings.Split(in, ",") {
			t = NormalizeTag(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// FormatTags renders tags in storage format: deduplicated, sorted and
// joined with ", ".
func FormatTags(tags ...string) string {
	return NewTagSet(tags...).String()
}

// MergeTags unions user supplied tags with inferred ones and renders the
// result for storage. With no user tags the inferred set is used alone.
func MergeTags(userTags []string, inferred TagSet) string {
	merged := NewTagSet(userTags...)
	merged.Union(inferred)
	return merged.String()
}
