package usecase

import (
	"context"
	"fmt"

	"cvrag/internal/domain"
)

// FallbackAnswer is returned when no chunk clears the score threshold.
const FallbackAnswer = "No relevant CV content found. Try rephrasing the question or indexing more CVs."

// Pipeline is the single entry point for answering questions: it composes
// retrieval, context assembly and generation.
type Pipeline struct {
	retriever *Retriever
	generator *Generator
}

func NewPipeline(retriever *Retriever, generator *Generator) *Pipeline {
	return &Pipeline{retriever: retriever, generator: generator}
}

// Answer retrieves relevant chunks and generates a grounded answer. When
// retrieval comes back empty the fixed fallback is returned and the
// language model is not called.
func (p *Pipeline) Answer(ctx context.Context, question string, history []domain.Turn) (domain.Answer, error) {
	hits, err := p.retriever.Retrieve(ctx, question)
	if err != nil {
		return domain.Answer{}, err
	}

	if len(hits) == 0 {
		return domain.Answer{Text: FallbackAnswer}, nil
	}

	text, err := p.generator.Generate(ctx, question, BuildContext(hits), history)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generation failed: %w", err)
	}

	return domain.Answer{Text: text, Hits: hits}, nil
}
