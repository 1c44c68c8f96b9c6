package port

import (
	"context"
	"errors"
)

// ErrEmptyEmbedding is returned when the embedding provider responds with
// no vectors for a non-empty input.
var ErrEmptyEmbedding = errors.New("embedding returned empty result")

// LLM represents a language model for text generation.
type LLM interface {
	// Generate generates text for the given prompt and returns it verbatim.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
