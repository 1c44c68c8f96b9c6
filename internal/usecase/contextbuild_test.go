package usecase

import (
	"strings"
	"testing"

	"cvrag/internal/domain"
)

func TestBuildContextGroupsByCandidate(t *testing.T) {
	hits := []domain.Hit{
		{Text: "ana chunk one", Candidate: "ana"},
		{Text: "bob chunk one", Candidate: "bob"},
		{Text: "ana chunk two", Candidate: "ana"},
	}

	out := BuildContext(hits)

	if strings.Count(out, "CANDIDATE: ana") != 1 {
		t.Errorf("expected exactly one ana section:\n%s", out)
	}
	if strings.Count(out, "CANDIDATE: bob") != 1 {
		t.Errorf("expected exactly one bob section:\n%s", out)
	}

	// Candidates appear in first-seen order, and chunks stay inside
	// their candidate's section.
	anaIdx := strings.Index(out, "CANDIDATE: ana")
	bobIdx := strings.Index(out, "CANDIDATE: bob")
	if anaIdx > bobIdx {
		t.Error("expected ana section before bob section")
	}
	secondChunk := strings.Index(out, "ana chunk two")
	if secondChunk > bobIdx {
		t.Error("expected ana chunk two pulled into the ana section before bob's")
	}
}

func TestBuildContextSingleCandidateOrder(t *testing.T) {
	hits := []domain.Hit{
		{Text: "first", Candidate: "ana"},
		{Text: "second", Candidate: "ana"},
	}

	out := BuildContext(hits)

	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("expected chunks in input order within a section")
	}
	if !strings.HasPrefix(out, candidateHeader+"\nCANDIDATE: ana\n"+candidateHeader) {
		t.Errorf("unexpected section header format:\n%s", out)
	}
}

func TestBuildContextEmpty(t *testing.T) {
	if out := BuildContext(nil); out != "" {
		t.Errorf("expected empty context for no hits, got %q", out)
	}
}
