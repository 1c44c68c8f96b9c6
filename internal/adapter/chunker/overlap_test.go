package chunker

import (
	"strings"
	"testing"
)

func TestNewOverlapChunkerValidation(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"valid", 500, 100, false},
		{"zero overlap", 100, 0, false},
		{"negative overlap", 100, -1, true},
		{"size equals overlap", 100, 100, true},
		{"size below overlap", 100, 200, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOverlapChunker(tc.size, tc.overlap)
			if (err != nil) != tc.wantErr {
				t.Errorf("NewOverlapChunker(%d, %d) error = %v, wantErr %v", tc.size, tc.overlap, err, tc.wantErr)
			}
		})
	}
}

func TestChunkEmptyText(t *testing.T) {
	c, err := NewOverlapChunker(500, 100)
	if err != nil {
		t.Fatal(err)
	}
	if chunks := c.Chunk(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestChunkShortText(t *testing.T) {
	c, err := NewOverlapChunker(500, 100)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.Chunk("Name: Ana\nSkills: Python")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Name: Ana\nSkills: Python" {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestChunkNonEmptyAndTrimmed(t *testing.T) {
	c, err := NewOverlapChunker(50, 10)
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("some line of resume text\n", 40)
	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if chunk != strings.TrimSpace(chunk) {
			t.Errorf("chunk %d not trimmed: %q", i, chunk)
		}
	}
}

func TestChunkPrefersNewlineBoundary(t *testing.T) {
	c, err := NewOverlapChunker(30, 5)
	if err != nil {
		t.Fatal(err)
	}

	// Newline at offset 20 is within the first window, so the first chunk
	// must end there instead of at the hard cut.
	text := "Skills: Python, SQL\nEducation: BSc Computer Science"
	chunks := c.Chunk(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if chunks[0] != "Skills: Python, SQL" {
		t.Errorf("expected first chunk to end at newline, got %q", chunks[0])
	}
}

func TestChunkHardCutWithoutNewline(t *testing.T) {
	c, err := NewOverlapChunker(10, 2)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Chunk("abcdefghijklmnopqrstuvwxyz")
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	if chunks[0] != "abcdefghij" {
		t.Errorf("expected hard cut at size, got %q", chunks[0])
	}
	// Consecutive hard-cut chunks overlap by exactly the configured overlap.
	if !strings.HasPrefix(chunks[1], "ij") {
		t.Errorf("expected second chunk to start with overlap %q, got %q", "ij", chunks[1])
	}
}

func TestChunkCoverage(t *testing.T) {
	c, err := NewOverlapChunker(10, 3)
	if err != nil {
		t.Fatal(err)
	}

	text := "abcdefghijklmnopqrstuvwxyz0123456789"
	chunks := c.Chunk(text)

	// With no whitespace and no newlines, overlapping chunks must cover the
	// whole input with no gaps.
	covered := chunks[0]
	for _, chunk := range chunks[1:] {
		merged := false
		for ol := min(len(covered), len(chunk)); ol > 0; ol-- {
			if strings.HasSuffix(covered, chunk[:ol]) {
				covered += chunk[ol:]
				merged = true
				break
			}
		}
		if !merged {
			t.Fatalf("chunk %q does not overlap previous coverage %q", chunk, covered)
		}
	}
	if covered != text {
		t.Errorf("chunks do not cover input: got %q", covered)
	}
}

func TestChunkDeterminism(t *testing.T) {
	c, err := NewOverlapChunker(40, 10)
	if err != nil {
		t.Fatal(err)
	}

	text := "Name: Ana\nSkills: Python, SQL\n" + strings.Repeat("Experience: data pipelines\n", 10)
	first := c.Chunk(text)
	second := c.Chunk(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestChunkTerminatesOnDenseNewlines(t *testing.T) {
	// Newlines immediately after each window start would stall a naive
	// implementation once overlap pulls the cursor back.
	c, err := NewOverlapChunker(10, 9)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Chunk(strings.Repeat("ab\n", 50))
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, chunk := range chunks {
		if chunk == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
