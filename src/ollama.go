package vnovel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaClient is the default narrative backend: a locally hosted model served
// by Ollama.
type OllamaClient struct {
	client *api.Client
	model  string
}

func NewOllamaClient(host, model string) (*OllamaClient, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parsing ollama host %q: %w", host, err)
	}
	return &OllamaClient{
		client: api.NewClient(u, http.DefaultClient),
		model:  model,
	}, nil
}

func (c *OllamaClient) SendMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	stream := false
	var sb strings.Builder
	req := &api.GenerateRequest{
		Model:  c.model,
		System: systemPrompt,
		Prompt: userPrompt,
		Stream: &stream,
	}
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from model %s", c.model)
	}
	return sb.String(), nil
}
