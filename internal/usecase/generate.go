package usecase

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"

	"cvrag/internal/domain"
	"cvrag/internal/port"
)

//go:embed templates/*.txt
var promptTemplates embed.FS

// SystemPrompt defines the assistant persona and its grounding rules.
const SystemPrompt = `You are an expert HR assistant helping a recruiter evaluate candidates.

Rules:
- Answer ONLY from the CV excerpts provided - never invent information
- Always mention the candidate's name when referencing their data
- Be concise but complete; use structure when comparing multiple candidates
- If relevant info is missing from the excerpts, say so clearly
- End with a short recommendation when the question involves selection or ranking`

// historyWindow is the number of trailing turns included in the prompt
// (two question/answer exchanges).
const historyWindow = 4

var answerTemplate = template.Must(template.ParseFS(promptTemplates, "templates/answer_prompt.txt"))

// Generator composes the full prompt and delegates to the language model.
type Generator struct {
	llm port.LLM
}

func NewGenerator(llm port.LLM) *Generator {
	return &Generator{llm: llm}
}

type promptTurn struct {
	Role    string
	Content string
}

type promptData struct {
	SystemPrompt string
	History      []promptTurn
	Context      string
	Question     string
}

// Generate answers the question from the assembled context, including at
// most the last four conversation turns. The model's output is returned
// verbatim; a transport failure propagates to the caller.
func (g *Generator) Generate(ctx context.Context, question, contextText string, history []domain.Turn) (string, error) {
	data := promptData{
		SystemPrompt: SystemPrompt,
		History:      windowHistory(history),
		Context:      contextText,
		Question:     question,
	}

	var buf bytes.Buffer
	if err := answerTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	return g.llm.Generate(ctx, buf.String())
}

func windowHistory(history []domain.Turn) []promptTurn {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	turns := make([]promptTurn, 0, len(history))
	for _, t := range history {
		role := "Assistant"
		if t.Role == domain.RoleUser {
			role = "Recruiter"
		}
		turns = append(turns, promptTurn{Role: role, Content: t.Content})
	}
	return turns
}
