package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMockEmbedderDeterminism(t *testing.T) {
	e := NewMockEmbedder(64)
	ctx := context.Background()

	first, err := e.Embed(ctx, []string{"Skills: Python, SQL"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Embed(ctx, []string{"Skills: Python, SQL"})
	if err != nil {
		t.Fatal(err)
	}

	for i := range first[0] {
		if first[0][i] != second[0][i] {
			t.Fatalf("vectors differ at %d", i)
		}
	}
}

func TestMockEmbedderNormalized(t *testing.T) {
	e := NewMockEmbedder(64)

	vectors, err := e.Embed(context.Background(), []string{"Python SQL databases"})
	if err != nil {
		t.Fatal(err)
	}

	var sum float64
	for _, x := range vectors[0] {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1.0) > 1e-5 {
		t.Errorf("vector not unit length, squared norm %f", sum)
	}
}

func TestMockEmbedderSharedTokensScoreHigher(t *testing.T) {
	e := NewMockEmbedder(128)
	ctx := context.Background()

	vectors, err := e.Embed(ctx, []string{
		"Python SQL data pipelines",
		"Python SQL analytics",
		"gardening and cooking",
	})
	if err != nil {
		t.Fatal(err)
	}

	related := dot(vectors[0], vectors[1])
	unrelated := dot(vectors[0], vectors[2])
	if related <= unrelated {
		t.Errorf("expected overlapping texts to score higher: related=%f unrelated=%f", related, unrelated)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v := Normalize([]float32{0, 0, 0})
	for i, x := range v {
		if x != 0 {
			t.Errorf("index %d: expected 0, got %f", i, x)
		}
	}
}

func TestOpenAIEmbedderOrderAndNormalization(t *testing.T) {
	// The endpoint answers out of input order; vectors must still come back
	// in input order, normalized.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Input) != 2 {
			t.Fatalf("expected 2 inputs, got %d", len(req.Input))
		}

		resp := map[string]any{
			"object": "list",
			"model":  "test-model",
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float32{0, 2, 0}},
				{"object": "embedding", "index": 0, "embedding": []float32{3, 0, 0}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	e := NewOllamaEmbedder("test-model", server.URL, 3)

	vectors, err := e.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 1 || vectors[1][1] != 1 {
		t.Errorf("vectors not normalized in input order: %v", vectors)
	}
}

func TestOpenAIEmbedderMissingKey(t *testing.T) {
	t.Setenv("CVRAG_TEST_EMPTY_KEY", "")
	if _, err := NewOpenAIEmbedder("CVRAG_TEST_EMPTY_KEY", "text-embedding-3-small", 1536); err == nil {
		t.Error("expected error for missing API key")
	}
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
