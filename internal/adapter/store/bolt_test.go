package store

import (
	"context"
	"path/filepath"
	"testing"

	"cvrag/internal/domain"
	"cvrag/internal/port"
)

func TestBoltStore(t *testing.T) {
	storeScenarios(t, func(t *testing.T) port.VectorStore {
		s, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"), 3)
		if err != nil {
			t.Fatal(err)
		}
		return s
	})
}

func TestBoltStoreDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := NewBoltStore(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := NewBoltStore(path, 4); err == nil {
		t.Error("expected error reopening store with different dimension")
	}
}

func TestBoltStoreRejectsWrongVectorSize(t *testing.T) {
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"), 3)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	err = s.Upsert(context.Background(), []domain.Record{
		testRecord("a", "ana", "ana.txt", []float32{1, 0}),
	})
	if err == nil {
		t.Error("expected error for vector with wrong dimension")
	}
}

func TestBoltStoreReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := NewBoltStore(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	err = s.Upsert(ctx, []domain.Record{
		testRecord("a", "ana", "ana.txt", []float32{1, 0, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBoltStore(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 record after reopen, got %d", count)
	}
}
