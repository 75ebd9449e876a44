// Package opensearch implements driven.SearchEngine against an
// OpenSearch-compatible HTTP backend.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
	"github.com/whiskeycoder/osg-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchEngine = (*SearchEngine)(nil)

// SearchEngine implements driven.SearchEngine using the OpenSearch REST API
type SearchEngine struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds OpenSearch connection configuration
type Config struct {
	// BaseURL is the backend endpoint (e.g., http://localhost:9200),
	// typically reached through the credential-forwarding proxy
	BaseURL string

	// Timeout for HTTP requests. A hung backend call surfaces as
	// domain.ErrSearchTimeout instead of hanging the caller.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// NewSearchEngine creates a new OpenSearch-backed SearchEngine
func NewSearchEngine(cfg Config) *SearchEngine {
	return &SearchEngine{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// searchResponse mirrors the backend's _search response envelope
type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		// Total is either a bare number (older backends) or an object
		// wrapping the number as {"value": N}. Decoded structurally.
		Total json.RawMessage `json:"total"`
		Hits  []struct {
			ID     string          `json:"_id"`
			Score  *float64        `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// docResponse mirrors the backend's _doc response envelope
type docResponse struct {
	ID     string          `json:"_id"`
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// Search executes one structured query via POST /<collection>/_search
func (s *SearchEngine) Search(ctx context.Context, req domain.QueryRequest) (*driven.HitPage, error) {
	body, err := json.Marshal(encodeSearchBody(req))
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/_search", s.baseURL, req.Collection)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("opensearch search failed: %s - %s", resp.Status, string(respBody))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}

	hits := make([]driven.Hit, 0, len(searchResp.Hits.Hits))
	for _, hit := range searchResp.Hits.Hits {
		var score float64
		if hit.Score != nil {
			score = *hit.Score
		}
		hits = append(hits, driven.Hit{
			ID:     hit.ID,
			Score:  score,
			Source: hit.Source,
		})
	}

	return &driven.HitPage{
		Hits:  hits,
		Total: decodeTotal(searchResp.Hits.Total),
		Took:  searchResp.Took,
	}, nil
}

// GetDocument fetches one document via GET /<collection>/_doc/<id>.
// A backend 404 maps to domain.ErrNotFound, not a transport failure.
func (s *SearchEngine) GetDocument(ctx context.Context, collection, id string) (*driven.Hit, error) {
	url := fmt.Sprintf("%s/%s/_doc/%s", s.baseURL, collection, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("opensearch get document failed: %s - %s", resp.Status, string(respBody))
	}

	var docResp docResponse
	if err := json.NewDecoder(resp.Body).Decode(&docResp); err != nil {
		return nil, err
	}
	if !docResp.Found || len(docResp.Source) == 0 {
		return nil, domain.ErrNotFound
	}

	return &driven.Hit{ID: docResp.ID, Source: docResp.Source}, nil
}

// HealthCheck verifies the backend cluster is reachable via /_cluster/health
func (s *SearchEngine) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/_cluster/health", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: cluster health returned %s", domain.ErrEngineUnavailable, resp.Status)
	}

	return nil
}

// CheckCollection verifies a collection exists via GET /<collection>
func (s *SearchEngine) CheckCollection(ctx context.Context, collection string) error {
	url := fmt.Sprintf("%s/%s", s.baseURL, collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("collection %s check failed: %s - %s", collection, resp.Status, string(respBody))
	}

	return nil
}

// decodeTotal extracts the hit total from either backend response shape.
// Defaults to 0 when neither shape matches.
func decodeTotal(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var wrapped struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Value
	}

	return 0
}

// classifyTransportError distinguishes timeouts from other transport
// failures so callers can surface them as a distinct error kind.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", domain.ErrSearchTimeout, err)
	}
	return err
}
