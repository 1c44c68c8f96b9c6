package chunker

import (
	"fmt"
	"strings"
)

// OverlapChunker splits document text into overlapping segments that prefer
// to break at newlines, preserving logical CV sections.
type OverlapChunker struct {
	size    int
	overlap int
}

// NewOverlapChunker creates a chunker. Sizes are in characters and require
// size > overlap >= 0.
func NewOverlapChunker(size, overlap int) (*OverlapChunker, error) {
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must be >= 0, got %d", overlap)
	}
	if size <= overlap {
		return nil, fmt.Errorf("chunk size (%d) must be greater than overlap (%d)", size, overlap)
	}
	return &OverlapChunker{size: size, overlap: overlap}, nil
}

// Chunk splits text into trimmed, non-empty segments. Consecutive segments
// overlap by at most the configured overlap. Empty text yields no chunks.
func (c *OverlapChunker) Chunk(text string) []string {
	runes := []rune(text)
	var chunks []string

	start := 0
	for start < len(runes) {
		end := start + c.size
		if end < len(runes) {
			// Prefer the nearest newline strictly after start so sections
			// stay intact; fall back to a hard cut when there is none.
			if nl := lastNewline(runes, start, end); nl > start {
				end = nl
			}
		}

		sliceEnd := end
		if sliceEnd > len(runes) {
			sliceEnd = len(runes)
		}
		if segment := strings.TrimSpace(string(runes[start:sliceEnd])); segment != "" {
			chunks = append(chunks, segment)
		}

		// end strictly increases because size > overlap, but a newline
		// adjustment can pull it back far enough to stall; clamp so the
		// next start always advances.
		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// lastNewline returns the index of the last newline in runes[start:end),
// or -1 when there is none.
func lastNewline(runes []rune, start, end int) int {
	for i := end - 1; i > start; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}
