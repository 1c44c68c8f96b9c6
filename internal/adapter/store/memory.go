package store

import (
	"context"
	"math"
	"sort"
	"sync"

	"cvrag/internal/domain"
	"cvrag/internal/port"
)

// MemoryStore is an in-memory vector store. It backs tests and keeps the
// core exercisable without an external database.
type MemoryStore struct {
	mu      sync.RWMutex
	ids     []string // insertion order, for stable scroll and tie order
	records map[string]domain.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.Record)}
}

func (s *MemoryStore) Upsert(_ context.Context, records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if _, ok := s.records[r.ID]; !ok {
			s.ids = append(s.ids, r.ID)
		}
		s.records[r.ID] = r
	}
	return nil
}

func (s *MemoryStore) Search(_ context.Context, vector []float32, topK int, scoreThreshold float32) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.SearchResult
	for _, id := range s.ids {
		r := s.records[id]
		score := CosineSimilarity(vector, r.Vector)
		if score < scoreThreshold {
			continue
		}
		results = append(results, domain.SearchResult{Payload: r.Payload, Score: score})
	}

	// Stable sort keeps insertion order for equal scores within one call.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (s *MemoryStore) Scroll(_ context.Context, limit int) ([]domain.Payload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payloads := make([]domain.Payload, 0, len(s.ids))
	for _, id := range s.ids {
		if len(payloads) >= limit {
			break
		}
		payloads = append(payloads, s.records[id].Payload)
	}
	return payloads, nil
}

func (s *MemoryStore) DeleteWhere(_ context.Context, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.ids[:0]
	for _, id := range s.ids {
		v, ok := s.records[id].Payload.Field(field)
		if ok && v == value {
			delete(s.records, id)
			continue
		}
		kept = append(kept, id)
	}
	s.ids = kept
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// CosineSimilarity computes cosine similarity between two vectors.
// Mismatched lengths or zero vectors score 0.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

var _ port.VectorStore = (*MemoryStore)(nil)
