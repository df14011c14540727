// ABOUTME: Sentiment and entity enrichment for tag inference
// ABOUTME: Defines the Enricher capability and an HTTP client for the NLP service
package tagging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	positiveThreshold = 0.3
	negativeThreshold = -0.3

	// DefaultEnrichTimeout bounds a single enrichment call.
	DefaultEnrichTimeout = 2 * time.Second
)

// entityTextLabels are entity categories whose literal text is also used
// as a tag.
var entityTextLabels = map[string]bool{
	"PERSON": true,
	"ORG":    true,
	"GPE":    true,
	"LOC":    true,
}

// Sentiment holds the compound polarity score in [-1, 1].
type Sentiment struct {
	Compound float64 `json:"compound"`
}

// Entity is a named entity recognized in a text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Analysis is the enrichment result for one text.
type Analysis struct {
	Sentiment *Sentiment `json:"sentiment,omitempty"`
	Entities  []Entity   `json:"entities"`
}

// Enricher analyzes a single text. Implementations must honor ctx.
type Enricher interface {
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

// SentimentTag buckets a compound score into positive, negative or neutral.
func SentimentTag(compound float64) string {
	switch {
	case compound > positiveThreshold:
		return "positive"
	case compound < negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// TagsFromAnalysis derives tags from an enrichment result.
func TagsFromAnalysis(a *Analysis) TagSet {
	tags := make(TagSet)
	if a == nil {
		return tags
	}
	if a.Sentiment != nil {
		tags.Add(SentimentTag(a.Sentiment.Compound))
	}
	for _, e := range a.Entities {
		label := strings.TrimSpace(e.Label)
		if label == "" {
			continue
		}
		tags.Add(strings.ToLower(label))
		if entityTextLabels[strings.ToUpper(label)] {
			tags.Add(strings.ToLower(strings.TrimSpace(e.Text)))
		}
	}
	return tags
}

// HTTPEnricher calls the NLP service's batch endpoint with a single text.
type HTTPEnricher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPEnricher creates an enricher for the service at baseURL. A nil
// client uses one with DefaultEnrichTimeout.
func NewHTTPEnricher(baseURL string, client *http.Client) *HTTPEnricher {
	if client == nil {
		client = &http.Client{Timeout: DefaultEnrichTimeout}
	}
	return &HTTPEnricher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type batchRequest struct {
	Texts []string `json:"texts"`
}

type batchResponse struct {
	Results []Analysis `json:"results"`
}

// Analyze implements Enricher.
func (e *HTTPEnricher) Analyze(ctx context.Context, text string) (*Analysis, error) {
	body, err := json.Marshal(batchRequest{Texts: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/analyze_batch", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nlp service error (status %d): %s", resp.StatusCode, string(data))
	}

	var out batchResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(out.Results) == 0 {
		return nil, errors.New("empty results")
	}
	return &out.Results[0], nil
}
