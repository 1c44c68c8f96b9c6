package usecase

import (
	"context"
	"fmt"
	"math"

	"cvrag/internal/domain"
	"cvrag/internal/port"
)

// Retriever embeds a question and fetches the top-K most similar chunks
// from the vector store.
type Retriever struct {
	store          port.VectorStore
	embedder       port.Embedder
	topK           int
	scoreThreshold float32
}

func NewRetriever(store port.VectorStore, embedder port.Embedder, topK int, scoreThreshold float32) *Retriever {
	return &Retriever{
		store:          store,
		embedder:       embedder,
		topK:           topK,
		scoreThreshold: scoreThreshold,
	}
}

// Retrieve returns hits ordered by descending score, with scores rounded to
// three decimals. An empty result is a valid outcome, not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]domain.Hit, error) {
	vector, err := port.EmbedOne(ctx, r.embedder, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := r.store.Search(ctx, vector, r.topK, r.scoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	hits := make([]domain.Hit, 0, len(results))
	for _, res := range results {
		hits = append(hits, domain.Hit{
			Text:       res.Payload.Text,
			Candidate:  res.Payload.Candidate,
			Filename:   res.Payload.Filename,
			ChunkIndex: res.Payload.ChunkIndex,
			Score:      roundScore(float64(res.Score)),
		})
	}
	return hits, nil
}

func roundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}
