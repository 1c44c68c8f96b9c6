// Package llm wraps external language models behind the port.LLM interface.
// Gemini, OpenAI and Ollama are all reached through their OpenAI-compatible
// chat completion endpoints.
package llm

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"cvrag/internal/port"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// Client generates text via a chat completion endpoint. A transport failure
// propagates to the caller; there are no automatic retries.
type Client struct {
	client *openai.Client
	model  string
}

// NewGeminiClient connects to Gemini's OpenAI-compatible endpoint.
func NewGeminiClient(apiKeyEnv, model string) (*Client, error) {
	return newClient(apiKeyEnv, model, geminiBaseURL)
}

// NewOpenAIClient connects to the OpenAI cloud endpoint.
func NewOpenAIClient(apiKeyEnv, model string) (*Client, error) {
	return newClient(apiKeyEnv, model, "")
}

// NewOllamaClient connects to a local Ollama server. No API key is required.
func NewOllamaClient(model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = baseURL
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

func newClient(apiKeyEnv, model, baseURL string) (*Client, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) ModelName() string {
	return c.model
}

var _ port.LLM = (*Client)(nil)
