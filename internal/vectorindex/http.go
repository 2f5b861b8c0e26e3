package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/andeslegal/consulta/internal/models"
)

const defaultSearchTimeout = 10 * time.Second

// HTTPIndex is a client for a remote vector index exposing a JSON search
// endpoint. The remote service embeds the query server-side.
type HTTPIndex struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPIndex creates a client for the index at endpoint. timeout bounds each
// search call; zero means defaultSearchTimeout.
func NewHTTPIndex(endpoint, apiKey string, timeout time.Duration) *HTTPIndex {
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	return &HTTPIndex{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type searchResponse struct {
	// Metric is "similarity" or "distance"; distances are converted to
	// similarity via 1 - distance.
	Metric  string        `json:"metric"`
	Matches []searchMatch `json:"matches"`
}

type searchMatch struct {
	Text       string  `json:"text"`
	Source     string  `json:"source"`
	SourceType string  `json:"source_type"`
	Score      float64 `json:"score"`
}

// Search queries the remote index for the k most similar passages.
func (h *HTTPIndex) Search(ctx context.Context, query string, k int) ([]*models.RetrievedPassage, error) {
	body, err := json.Marshal(searchRequest{Query: query, TopK: k})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+"/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vector index request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vector index returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	passages := make([]*models.RetrievedPassage, 0, len(sr.Matches))
	for _, m := range sr.Matches {
		similarity := m.Score
		if sr.Metric == "distance" {
			similarity = 1.0 - m.Score
		}
		if similarity < 0 {
			similarity = 0
		}
		passages = append(passages, &models.RetrievedPassage{
			Text:       m.Text,
			Source:     m.Source,
			SourceType: m.SourceType,
			Similarity: similarity,
		})
	}
	return passages, nil
}

// Close is a no-op; the underlying http.Client needs no teardown.
func (h *HTTPIndex) Close() error { return nil }
