package vnovel

import (
	"context"
	"fmt"
)

// TextClient is the narrative backend: one prompt in, one completion out.
type TextClient interface {
	SendMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewTextClient builds the configured narrative backend.
func NewTextClient(s Settings) (TextClient, error) {
	switch s.TextBackend {
	case BackendOllama:
		return NewOllamaClient(s.OllamaHost, s.OllamaModel)
	case BackendOpenAI:
		return NewOpenAIClient(s.OpenAIBaseURL, s.OpenAIAPIKey, s.OpenAIModel), nil
	case BackendClaude:
		if s.ClaudeAPIKey == "" {
			return nil, fmt.Errorf("claude backend selected but CLAUDE_API_KEY is not set")
		}
		return NewClaudeClient(s.ClaudeAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown text backend %q", s.TextBackend)
	}
}
