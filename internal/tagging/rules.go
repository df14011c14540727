// ABOUTME: Keyword rule dictionary for tag inference
// ABOUTME: Rules live in TOML so new ones can be added without code changes
package tagging

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed default_rules.toml
var defaultRulesTOML string

// Rule maps keywords to tags. It fires when the lowercased text contains
// any keyword as a substring.
type Rule struct {
	Keywords []string `toml:"keywords" json:"keywords"`
	Tags     []string `toml:"tags" json:"tags"`
}

// Matches reports whether lowered (already lowercased text) contains any
// of the rule's keywords.
func (r Rule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Dictionary is the on-disk form of a rule list.
type Dictionary struct {
	Rules []Rule `toml:"rule"`
}

// DefaultRules returns the built-in dictionary shipped with quietwins.
func DefaultRules() []Rule {
	var d Dictionary
	if _, err := toml.Decode(defaultRulesTOML, &d); err != nil {
		panic(fmt.Sprintf("tagging: embedded rules are invalid: %v", err))
	}
	rules, err := normalizeRules(d.Rules)
	if err != nil {
		panic(fmt.Sprintf("tagging: embedded rules are invalid: %v", err))
	}
	return rules
}

// LoadRules reads a rule dictionary from a TOML file.
func LoadRules(path string) ([]Rule, error) {
	var d Dictionary
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("decode rules %s: %w", path, err)
	}
	return normalizeRules(d.Rules)
}

// LoadRulesOrDefault loads rules from path when the file exists and falls
// back to DefaultRules otherwise.
func LoadRulesOrDefault(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultRules(), nil
	}
	return LoadRules(path)
}

// SaveRules writes rules to path as TOML, creating parent directories.
func SaveRules(path string, rules []Rule) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // Standard directory permissions for user config
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(Dictionary{Rules: rules})
}

// normalizeRules lowercases keywords, trims tags and rejects rules that
// could never fire or would contribute nothing.
func normalizeRules(in []Rule) ([]Rule, error) {
	out := make([]Rule, 0, len(in))
	for i, r := range in {
		var kws, tags []string
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		for _, t := range r.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		if len(kws) == 0 {
			return nil, fmt.Errorf("rule %d has no keywords", i)
		}
		if len(tags) == 0 {
			return nil, fmt.Errorf("rule %d has no tags", i)
		}
		out = append(out, Rule{Keywords: kws, Tags: tags})
	}
	return out, nil
}
