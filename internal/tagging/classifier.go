// ABOUTME: Rule-based tag classifier with fallback and enrichment steps
// ABOUTME: Always returns at least one tag, "misc" when nothing else applies
package tagging

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// MiscTag is assigned when no rule, fallback or enrichment yields a tag.
const MiscTag = "misc"

// Classifier infers tags for win text.
type Classifier struct {
	rules    []Rule
	enricher Enricher
	timeout  time.Duration
	logger   *log.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules sets the keyword dictionary. Passing nil runs the classifier
// without a dictionary, leaving only the built-in fallback rules.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithEnricher enables the enrichment step.
func WithEnricher(e Enricher) Option {
	return func(c *Classifier) {
		c.enricher = e
	}
}

// WithTimeout bounds the enrichment call.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for enrichment failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClassifier creates a classifier using the default dictionary unless
// overridden by opts.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		rules:   DefaultRules(),
		timeout: DefaultEnrichTimeout,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the tags inferred for text. It never fails; ctx only
// bounds the enrichment call.
func (c *Classifier) Classify(ctx context.Context, text string) TagSet {
	lowered := strings.ToLower(text)

	tags := applyRules(c.rules, lowered)
	if tags.Len() == 0 {
		tags = applyRules(builtinRules, lowered)
	}
	if tags.Len() == 0 && c.enricher != nil {
		tags.Union(c.enrich(ctx, text))
	}
	if tags.Len() == 0 {
		tags.Add(MiscTag)
	}
	return tags
}

func (c *Classifier) enrich(ctx context.Context, text string) TagSet {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	analysis, err := c.enricher.Analyze(ctx, text)
	if err != nil {
		c.logger.Debug("enrichment unavailable", "err", err)
		return nil
	}
	return TagsFromAnalysis(analysis)
}
