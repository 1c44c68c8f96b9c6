package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cvrag/internal/domain"
	"cvrag/internal/port"
)

// QdrantStore talks to a Qdrant instance over its REST API. The collection
// is created on construction if absent (cosine metric, configured
// dimension); an unreachable instance at that point is fatal to the session.
type QdrantStore struct {
	baseURL    string
	apiKey     string
	collection string
	dim        int
	client     *http.Client
}

// NewQdrantStore connects to Qdrant and ensures the collection exists.
func NewQdrantStore(ctx context.Context, baseURL, apiKey, collection string, dim int) (*QdrantStore, error) {
	s := &QdrantStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		collection: collection,
		dim:        dim,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *QdrantStore) ensureCollection(ctx context.Context) error {
	status, _, err := s.do(ctx, http.MethodGet, "/collections/"+s.collection, nil)
	if err != nil {
		return fmt.Errorf("qdrant unreachable: %w", err)
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("qdrant returned status %d checking collection %q", status, s.collection)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.dim,
			"distance": "Cosine",
		},
	}
	status, raw, err := s.do(ctx, http.MethodPut, "/collections/"+s.collection, body)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("failed to create collection %q: status %d: %s", s.collection, status, raw)
	}
	return nil
}

type qdrantPoint struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload domain.Payload `json:"payload"`
}

func (s *QdrantStore) Upsert(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]qdrantPoint, len(records))
	for i, r := range records {
		points[i] = qdrantPoint{ID: r.ID, Vector: r.Vector, Payload: r.Payload}
	}

	status, raw, err := s.do(ctx, http.MethodPut,
		fmt.Sprintf("/collections/%s/points?wait=true", s.collection),
		map[string]any{"points": points})
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("upsert returned status %d: %s", status, raw)
	}
	return nil
}

func (s *QdrantStore) Search(ctx context.Context, vector []float32, topK int, scoreThreshold float32) ([]domain.SearchResult, error) {
	body := map[string]any{
		"vector":          vector,
		"limit":           topK,
		"with_payload":    true,
		"score_threshold": scoreThreshold,
	}
	status, raw, err := s.do(ctx, http.MethodPost,
		fmt.Sprintf("/collections/%s/points/search", s.collection), body)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if status == http.StatusNotFound {
		// Missing collection means an empty corpus, not an error.
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d: %s", status, raw)
	}

	var resp struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload domain.Payload `json:"payload"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	results := make([]domain.SearchResult, len(resp.Result))
	for i, r := range resp.Result {
		results[i] = domain.SearchResult{Payload: r.Payload, Score: r.Score}
	}
	return results, nil
}

func (s *QdrantStore) Scroll(ctx context.Context, limit int) ([]domain.Payload, error) {
	body := map[string]any{
		"limit":        limit,
		"with_payload": true,
	}
	status, raw, err := s.do(ctx, http.MethodPost,
		fmt.Sprintf("/collections/%s/points/scroll", s.collection), body)
	if err != nil {
		return nil, fmt.Errorf("scroll failed: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("scroll returned status %d: %s", status, raw)
	}

	var resp struct {
		Result struct {
			Points []struct {
				Payload domain.Payload `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse scroll response: %w", err)
	}

	payloads := make([]domain.Payload, len(resp.Result.Points))
	for i, p := range resp.Result.Points {
		payloads[i] = p.Payload
	}
	return payloads, nil
}

func (s *QdrantStore) DeleteWhere(ctx context.Context, field, value string) error {
	body := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": field, "match": map[string]any{"value": value}},
			},
		},
	}
	status, raw, err := s.do(ctx, http.MethodPost,
		fmt.Sprintf("/collections/%s/points/delete?wait=true", s.collection), body)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if status == http.StatusNotFound {
		return nil
	}
	if status != http.StatusOK {
		return fmt.Errorf("delete returned status %d: %s", status, raw)
	}
	return nil
}

func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	status, raw, err := s.do(ctx, http.MethodPost,
		fmt.Sprintf("/collections/%s/points/count", s.collection),
		map[string]any{"exact": true})
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	if status == http.StatusNotFound {
		return 0, nil
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("count returned status %d: %s", status, raw)
	}

	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse count response: %w", err)
	}
	return resp.Result.Count, nil
}

func (s *QdrantStore) Close() error {
	return nil
}

// do sends one JSON request and returns the status code and raw body.
func (s *QdrantStore) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

var _ port.VectorStore = (*QdrantStore)(nil)
