// ABOUTME: Built-in fallback rules used when the dictionary yields nothing
// ABOUTME: Also usable on their own where no dictionary is configured
package tagging

import "strings"

// builtinRules cover a few high-value categories independently of the
// configurable dictionary.
var builtinRules = []Rule{
	{Keywords: []string{"essay", "draft", "write"}, Tags: []string{"writing"}},
	{Keywords: []string{"walk"}, Tags: []string{"casual recreation"}},
	{Keywords: []string{"family"}, Tags: []string{"family bonding"}},
}

// SuggestTags applies only the built-in fallback rules to text.
func SuggestTags(text string) TagSet {
	return applyRules(builtinRules, strings.ToLower(text))
}

// applyRules unions the tags of every rule that fires on lowered.
func applyRules(rules []Rule, lowered string) TagSet {
	tags := make(TagSet)
	for _, r := range rules {
		if r.Matches(lowered) {
			tags.Add(r.Tags...)
		}
	}
	return tags
}
