package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"cvrag/internal/adapter/chunker"
	"cvrag/internal/adapter/extract"
	"cvrag/internal/domain"
	"cvrag/internal/port"
)

var defaultPatterns = []string{"*.pdf", "*.docx", "*.txt"}

// Ingestor indexes CV files: extract, chunk, embed, upsert. Re-ingesting a
// filename already present in the store is a no-op.
type Ingestor struct {
	store       port.VectorStore
	embedder    port.Embedder
	chunker     *chunker.OverlapChunker
	scrollLimit int
	patterns    []string
}

func NewIngestor(store port.VectorStore, embedder port.Embedder, chk *chunker.OverlapChunker, scrollLimit int) *Ingestor {
	return &Ingestor{
		store:       store,
		embedder:    embedder,
		chunker:     chk,
		scrollLimit: scrollLimit,
		patterns:    defaultPatterns,
	}
}

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	FilesFound   int
	FilesIndexed int
	FilesSkipped int
	ChunksAdded  int
	Warnings     []string
}

// ProgressFunc reports per-file progress during ingestion.
type ProgressFunc func(processed, total int, filename string)

// Ingest indexes all new files in dir. Extraction failures skip the file
// with a warning; embedding or storage failures abort the run. The context
// is checked between documents, so a cancelled run leaves already-indexed
// files intact.
func (g *Ingestor) Ingest(ctx context.Context, dir string, progress ProgressFunc) (*IngestResult, error) {
	files, err := g.discover(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	indexed, err := g.indexedFilenames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed files: %w", err)
	}

	result := &IngestResult{FilesFound: len(files)}

	for i, filename := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if progress != nil {
			progress(i+1, len(files), filename)
		}

		if indexed[filename] {
			result.FilesSkipped++
			continue
		}

		text, err := extract.Text(filepath.Join(dir, filename))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", filename, err))
			continue
		}
		if text == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: no text extracted", filename))
			continue
		}

		added, err := g.ingestDocument(ctx, domain.Document{
			Filename:  filename,
			Candidate: CandidateName(filename),
			Text:      text,
		})
		if err != nil {
			return result, fmt.Errorf("failed to index %s: %w", filename, err)
		}

		result.FilesIndexed++
		result.ChunksAdded += added
	}

	return result, nil
}

// ingestDocument chunks, embeds and stores one document, returning the
// number of chunks added.
func (g *Ingestor) ingestDocument(ctx context.Context, doc domain.Document) (int, error) {
	chunks := g.chunker.Chunk(doc.Text)
	if len(chunks) == 0 {
		return 0, nil
	}

	vectors, err := g.embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embedding failed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedded %d of %d chunks", len(vectors), len(chunks))
	}

	records := make([]domain.Record, len(chunks))
	for i, text := range chunks {
		records[i] = domain.Record{
			ID:     uuid.New().String(),
			Vector: vectors[i],
			Payload: domain.Payload{
				Text:        text,
				Candidate:   doc.Candidate,
				Filename:    doc.Filename,
				ChunkIndex:  i,
				TotalChunks: len(chunks),
			},
		}
	}

	if err := g.store.Upsert(ctx, records); err != nil {
		return 0, fmt.Errorf("upsert failed: %w", err)
	}
	return len(records), nil
}

// discover lists supported files directly under dir, sorted by name.
func (g *Ingestor) discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		for _, pattern := range g.patterns {
			if ok, err := doublestar.Match(pattern, name); err == nil && ok {
				files = append(files, e.Name())
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// indexedFilenames returns the set of filenames already present in the
// store, via an unranked scroll.
func (g *Ingestor) indexedFilenames(ctx context.Context) (map[string]bool, error) {
	payloads, err := g.store.Scroll(ctx, g.scrollLimit)
	if err != nil {
		return nil, err
	}
	indexed := make(map[string]bool, len(payloads))
	for _, p := range payloads {
		indexed[p.Filename] = true
	}
	return indexed, nil
}

// Candidates returns chunk counts grouped by candidate name.
func (g *Ingestor) Candidates(ctx context.Context) (map[string]int, error) {
	payloads, err := g.store.Scroll(ctx, g.scrollLimit)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range payloads {
		counts[p.Candidate]++
	}
	return counts, nil
}

// CandidateName derives the logical entity name from a CV filename stem.
func CandidateName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
