// ABOUTME: Tests for the HTTP enrichment client
// ABOUTME: Uses httptest to stand in for the NLP service
package tagging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPEnricherAnalyze(t *testing.T) {
	var gotTexts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze_batch" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected request id header")
		}
		var req batchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotTexts = req.Texts
		_, _ = w.Write([]byte(`{"results":[{"sentiment":{"compound":-0.6,"neg":0.5},"tokens":["x"],"entities":[{"text":"Acme","label":"ORG"}]}]}`))
	}))
	defer srv.Close()

	e := NewHTTPEnricher(srv.URL+"/", nil)
	a, err := e.Analyze(context.Background(), "Acme rejected me")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(gotTexts) != 1 || gotTexts[0] != "Acme rejected me" {
		t.Errorf("server got texts %v", gotTexts)
	}

	tags := TagsFromAnalysis(a)
	for _, want := range []string{"negative", "org", "acme"} {
		if !tags.Contains(want) {
			t.Errorf("expected %q in %v", want, tags.Sorted())
		}
	}
}

func TestHTTPEnricherErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		if _, err := NewHTTPEnricher(srv.URL, nil).Analyze(context.Background(), "x"); err == nil {
			t.Error("expected error on 500")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		if _, err := NewHTTPEnricher(srv.URL, nil).Analyze(context.Background(), "x"); err == nil {
			t.Error("expected error on malformed body")
		}
	})

	t.Run("empty results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		if _, err := NewHTTPEnricher(srv.URL, nil).Analyze(context.Background(), "x"); err == nil {
			t.Error("expected error on empty results")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		c := NewClassifier(WithRules(nil), WithEnricher(NewHTTPEnricher(url, nil)))
		got := c.Classify(context.Background(), "zzz")
		if got.Len() != 1 || !got.Contains(MiscTag) {
			t.Errorf("got %v, want [misc]", got.Sorted())
		}
	})
}

func TestTagsFromAnalysisWithoutSentiment(t *testing.T) {
	tags := TagsFromAnalysis(&Analysis{Entities: []Entity{{Text: "https://x.io", Label: "URL"}}})
	if tags.Len() != 1 || !tags.Contains("url") {
		t.Errorf("got %v, want [url]", tags.Sorted())
	}
	if TagsFromAnalysis(nil).Len() != 0 {
		t.Error("expected no tags for nil analysis")
	}
}
