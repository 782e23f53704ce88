package vnovel

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeClient talks to the Anthropic API. It exists for runs where no local
// model is available; the default backend is Ollama.
type ClaudeClient struct {
	client *anthropic.Client
}

func NewClaudeClient(apiKey string) *ClaudeClient {
	return &ClaudeClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (c *ClaudeClient) SendMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := c.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     anthropic.F(anthropic.ModelClaude3_5SonnetLatest),
			MaxTokens: anthropic.F(int64(4096)),
			System: anthropic.F([]anthropic.TextBlockParam{
				anthropic.NewTextBlock(systemPrompt),
			}),
			Messages: anthropic.F([]anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(userPrompt),
				),
			}),
		},
	)
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from claude")
	}
	return message.Content[0].Text, nil
}
