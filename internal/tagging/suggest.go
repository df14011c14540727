// ABOUTME: Spelling suggestions for user supplied tags
// ABOUTME: Finds the closest known tag within a small edit distance
package tagging

import (
	"github.com/agnivade/levenshtein"
)

const maxSuggestDistance = 2

// DidYouMean returns the known tag closest to input, or "" when input is
// already known or nothing lies within two edits.
func DidYouMean(input string, known []string) string {
	norm := NormalizeTag(input)
	if norm == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, cand := range known {
		c := NormalizeTag(cand)
		if c == norm {
			return ""
		}
		if d := levenshtein.ComputeDistance(norm, c); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}
