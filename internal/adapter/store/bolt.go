package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"cvrag/internal/domain"
	"cvrag/internal/port"
)

var (
	bucketPoints = []byte("points")
	bucketMeta   = []byte("meta")
	keyDimension = []byte("dimension")
)

// BoltStore is a local on-disk vector store backed by bbolt, used when no
// remote Qdrant instance is configured. Similarity search scans all records
// in-process, which is fine for the expected corpus size.
type BoltStore struct {
	db  *bbolt.DB
	dim int
}

type boltPoint struct {
	Vector  []float32      `json:"vector"`
	Payload domain.Payload `json:"payload"`
}

// NewBoltStore opens (or creates) the store at path with the given vector
// dimension. A dimension mismatch against an existing store is a fatal
// configuration error: the records were embedded with a different model.
func NewBoltStore(path string, dim int) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketPoints); err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if stored := meta.Get(keyDimension); stored != nil {
			var existing int
			if err := json.Unmarshal(stored, &existing); err != nil {
				return err
			}
			if existing != dim {
				return fmt.Errorf("store has dimension %d, configured %d", existing, dim)
			}
			return nil
		}
		data, err := json.Marshal(dim)
		if err != nil {
			return err
		}
		return meta.Put(keyDimension, data)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db, dim: dim}, nil
}

func (s *BoltStore) Upsert(_ context.Context, records []domain.Record) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPoints)
		for _, r := range records {
			if len(r.Vector) != s.dim {
				return fmt.Errorf("vector dimension %d does not match store dimension %d", len(r.Vector), s.dim)
			}
			data, err := json.Marshal(boltPoint{Vector: r.Vector, Payload: r.Payload})
			if err != nil {
				return err
			}
			if err := b.Put([]byte(r.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Search(_ context.Context, vector []float32, topK int, scoreThreshold float32) ([]domain.SearchResult, error) {
	var results []domain.SearchResult

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPoints).ForEach(func(_, v []byte) error {
			var p boltPoint
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			score := CosineSimilarity(vector, p.Vector)
			if score < scoreThreshold {
				return nil
			}
			results = append(results, domain.SearchResult{Payload: p.Payload, Score: score})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (s *BoltStore) Scroll(_ context.Context, limit int) ([]domain.Payload, error) {
	var payloads []domain.Payload

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPoints).ForEach(func(_, v []byte) error {
			if len(payloads) >= limit {
				return nil
			}
			var p boltPoint
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			payloads = append(payloads, p.Payload)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return payloads, nil
}

func (s *BoltStore) DeleteWhere(_ context.Context, field, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPoints)

		var doomed [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var p boltPoint
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			if got, ok := p.Payload.Field(field); ok && got == value {
				key := make([]byte, len(k))
				copy(key, k)
				doomed = append(doomed, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range doomed {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Count(_ context.Context) (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketPoints).Stats().KeyN
		return nil
	})
	return count, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

var _ port.VectorStore = (*BoltStore)(nil)
