package port

import (
	"context"

	"cvrag/internal/domain"
)

// VectorStore abstracts the external vector database. Implementations must
// return search results ordered by descending score and must exclude any
// result scoring below the threshold.
type VectorStore interface {
	// Upsert writes or overwrites records by id.
	Upsert(ctx context.Context, records []domain.Record) error

	// Search returns up to topK nearest neighbors by cosine similarity,
	// excluding results below scoreThreshold, ordered by descending score.
	Search(ctx context.Context, vector []float32, topK int, scoreThreshold float32) ([]domain.SearchResult, error)

	// Scroll returns up to limit payloads without ranking, for inventory.
	Scroll(ctx context.Context, limit int) ([]domain.Payload, error)

	// DeleteWhere removes all records whose payload field equals value.
	DeleteWhere(ctx context.Context, field, value string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	Close() error
}
