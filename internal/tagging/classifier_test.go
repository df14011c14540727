// ABOUTME: Tests for the tag classifier
// ABOUTME: Covers dictionary rules, built-in fallback, enrichment and misc
package tagging

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeEnricher struct {
	analysis *Analysis
	err      error
	calls    int
}

func (f *fakeEnricher) Analyze(ctx context.Context, text string) (*Analysis, error) {
	f.calls++
	return f.analysis, f.err
}

type slowEnricher struct{}

func (slowEnricher) Analyze(ctx context.Context, text string) (*Analysis, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func assertHasTags(t *testing.T, got TagSet, want ...string) {
	t.Helper()
	for _, w := range want {
		if !got.Contains(w) {
			t.Errorf("expected tag %q in %v", w, got.Sorted())
		}
	}
}

func TestClassifyWithDictionary(t *testing.T) {
	c := NewClassifier()
	ctx := context.Background()

	t.Run("walk and essay", func(t *testing.T) {
		got := c.Classify(ctx, "Went for a long walk and wrote an essay draft")
		assertHasTags(t, got, "writing", "casual recreation", "walk", "health", "project", "work")
		if got.Contains(MiscTag) {
			t.Errorf("did not expect misc in %v", got.Sorted())
		}
	})

	t.Run("substring match inside words", func(t *testing.T) {
		got := c.Classify(ctx, "Declassified")
		assertHasTags(t, got, "class", "school")
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := c.Classify(ctx, "YOGA at dawn")
		assertHasTags(t, got, "exercise", "health")
	})

	t.Run("union of multiple rules", func(t *testing.T) {
		got := c.Classify(ctx, "Cooked a meal with friends")
		assertHasTags(t, got, "cook", "life", "food", "friend", "relationships")
	})

	t.Run("misc when nothing matches", func(t *testing.T) {
		got := c.Classify(ctx, "zzz")
		if got.Len() != 1 || !got.Contains(MiscTag) {
			t.Errorf("got %v, want [misc]", got.Sorted())
		}
	})
}

func TestClassifyWithoutDictionary(t *testing.T) {
	c := NewClassifier(WithRules(nil))
	got := c.Classify(context.Background(), "Went for a long walk and wrote an essay draft")

	assertHasTags(t, got, "writing", "casual recreation")
	if got.Contains("health") {
		t.Errorf("dictionary tags should not appear without a dictionary: %v", got.Sorted())
	}
	if got.Len() != 2 {
		t.Errorf("got %v, want exactly [casual recreation writing]", got.Sorted())
	}
}

func TestClassifyFallbackSkippedWhenDictionaryFires(t *testing.T) {
	rules := []Rule{{Keywords: []string{"walk"}, Tags: []string{"steps"}}}
	c := NewClassifier(WithRules(rules))

	got := c.Classify(context.Background(), "walk and essay")
	if got.Len() != 1 || !got.Contains("steps") {
		t.Errorf("got %v, want [steps]", got.Sorted())
	}
}

func TestClassifyEnrichment(t *testing.T) {
	ctx := context.Background()

	t.Run("not called when rules fire", func(t *testing.T) {
		f := &fakeEnricher{analysis: &Analysis{Sentiment: &Sentiment{Compound: 0.9}}}
		c := NewClassifier(WithEnricher(f))
		c.Classify(ctx, "finished my homework")
		if f.calls != 0 {
			t.Errorf("enricher called %d times, want 0", f.calls)
		}
	})

	t.Run("sentiment and entities", func(t *testing.T) {
		f := &fakeEnricher{analysis: &Analysis{
			Sentiment: &Sentiment{Compound: 0.8},
			Entities: []Entity{
				{Text: "Alice", Label: "PERSON"},
				{Text: "Dune", Label: "WORK_OF_ART"},
			},
		}}
		c := NewClassifier(WithRules(nil), WithEnricher(f))
		got := c.Classify(ctx, "Alice lent me Dune")

		assertHasTags(t, got, "positive", "person", "alice", "work_of_art")
		if got.Contains("dune") {
			t.Errorf("work of art text should not be a tag: %v", got.Sorted())
		}
		if got.Contains(MiscTag) {
			t.Errorf("did not expect misc: %v", got.Sorted())
		}
	})

	t.Run("failure falls through to misc", func(t *testing.T) {
		f := &fakeEnricher{err: errors.New("connection refused")}
		c := NewClassifier(WithRules(nil), WithEnricher(f))
		got := c.Classify(ctx, "zzz")
		if f.calls != 1 {
			t.Errorf("enricher called %d times, want 1", f.calls)
		}
		if got.Len() != 1 || !got.Contains(MiscTag) {
			t.Errorf("got %v, want [misc]", got.Sorted())
		}
	})

	t.Run("timeout falls through to misc", func(t *testing.T) {
		c := NewClassifier(WithRules(nil), WithEnricher(slowEnricher{}), WithTimeout(10*time.Millisecond))
		start := time.Now()
		got := c.Classify(ctx, "zzz")
		if time.Since(start) > time.Second {
			t.Errorf("classification was not time-bounded")
		}
		if !got.Contains(MiscTag) {
			t.Errorf("got %v, want misc", got.Sorted())
		}
	})

	t.Run("empty analysis falls through to misc", func(t *testing.T) {
		f := &fakeEnricher{analysis: &Analysis{}}
		c := NewClassifier(WithRules(nil), WithEnricher(f))
		got := c.Classify(ctx, "zzz")
		if got.Len() != 1 || !got.Contains(MiscTag) {
			t.Errorf("got %v, want [misc]", got.Sorted())
		}
	})
}

func TestClassifyAlwaysNonEmpty(t *testing.T) {
	c := NewClassifier()
	inputs := []string{"", " ", "a", "🎉", "Finished the marathon", "ok"}
	for _, in := range inputs {
		if got := c.Classify(context.Background(), in); got.Len() == 0 {
			t.Errorf("Classify(%q) returned an empty set", in)
		}
	}
}

func TestSentimentTag(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.31, "positive"},
		{0.3, "neutral"},
		{0, "neutral"},
		{-0.3, "neutral"},
		{-0.31, "negative"},
		{1, "positive"},
		{-1, "negative"},
	}
	for _, tt := range tests {
		if got := SentimentTag(tt.score); got != tt.want {
			t.Errorf("SentimentTag(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestSuggestTags(t *testing.T) {
	got := SuggestTags("Quality family time")
	if got.Len() != 1 || !got.Contains("family bonding") {
		t.Errorf("got %v, want [family bonding]", got.Sorted())
	}
	if got := SuggestTags("nothing here"); got.Len() != 0 {
		t.Errorf("got %v, want empty", got.Sorted())
	}
}
