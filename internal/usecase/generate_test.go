package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cvrag/internal/domain"
)

// fakeLLM records the prompt it receives and returns a canned answer.
type fakeLLM struct {
	answer string
	err    error
	prompt string
	calls  int
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.answer, f.err
}

func (f *fakeLLM) ModelName() string { return "fake" }

func TestGeneratePromptLayout(t *testing.T) {
	llm := &fakeLLM{answer: "Ana fits best."}
	g := NewGenerator(llm)

	answer, err := g.Generate(context.Background(), "Who knows SQL?", "some excerpts", nil)
	if err != nil {
		t.Fatal(err)
	}
	if answer != "Ana fits best." {
		t.Errorf("expected model output returned verbatim, got %q", answer)
	}

	if !strings.HasPrefix(llm.prompt, SystemPrompt) {
		t.Error("prompt should start with the system prompt")
	}
	if strings.Contains(llm.prompt, "Previous conversation:") {
		t.Error("empty history should omit the conversation block")
	}
	if !strings.Contains(llm.prompt, "CV Excerpts:\nsome excerpts") {
		t.Errorf("prompt missing context block:\n%s", llm.prompt)
	}
	if !strings.Contains(llm.prompt, "Recruiter question: Who knows SQL?") {
		t.Errorf("prompt missing question line:\n%s", llm.prompt)
	}
}

func TestGenerateHistoryWindow(t *testing.T) {
	llm := &fakeLLM{answer: "ok"}
	g := NewGenerator(llm)

	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "oldest question"},
		{Role: domain.RoleAssistant, Content: "oldest answer"},
		{Role: domain.RoleUser, Content: "q1"},
		{Role: domain.RoleAssistant, Content: "a1"},
		{Role: domain.RoleUser, Content: "q2"},
		{Role: domain.RoleAssistant, Content: "a2"},
	}

	if _, err := g.Generate(context.Background(), "next", "ctx", history); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(llm.prompt, "oldest question") {
		t.Error("turns beyond the window should be dropped")
	}
	if !strings.Contains(llm.prompt, "Recruiter: q1") {
		t.Errorf("expected user turns labeled Recruiter:\n%s", llm.prompt)
	}
	if !strings.Contains(llm.prompt, "Assistant: a2") {
		t.Errorf("expected assistant turns labeled Assistant:\n%s", llm.prompt)
	}
	if !strings.Contains(llm.prompt, "Previous conversation:") {
		t.Error("non-empty history should produce the conversation block")
	}
}

func TestGenerateLLMError(t *testing.T) {
	g := NewGenerator(&fakeLLM{err: errors.New("rate limited")})

	if _, err := g.Generate(context.Background(), "q", "ctx", nil); err == nil {
		t.Error("expected model error to propagate")
	}
}
