package vnovel

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Text backend selectors.
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
	BackendClaude = "claude"
)

// Settings holds everything the pipeline needs from the environment. Model
// identity and endpoints are configuration, not logic: swapping the narrative
// backend is a matter of VN_TEXT_BACKEND, nothing else changes.
type Settings struct {
	TextBackend string `envconfig:"VN_TEXT_BACKEND" default:"ollama"`

	// Ollama (default local backend).
	OllamaHost  string `envconfig:"OLLAMA_HOST" default:"http://127.0.0.1:11434"`
	OllamaModel string `envconfig:"VN_OLLAMA_MODEL" default:"llama3.1"`

	// OpenAI-compatible endpoint (LM Studio, vLLM, OpenRouter...).
	OpenAIBaseURL string `envconfig:"VN_OPENAI_BASE_URL" default:"http://127.0.0.1:1234/v1"`
	OpenAIModel   string `envconfig:"VN_OPENAI_MODEL" default:"local-model"`
	OpenAIAPIKey  string `envconfig:"VN_OPENAI_API_KEY"`

	// Anthropic.
	ClaudeAPIKey string `envconfig:"CLAUDE_API_KEY"`

	// Image backend: local SD-WebUI first, AI Horde as the fallback when no
	// local URL is configured.
	SDWebUIURL   string `envconfig:"SD_WEBUI_URL"`
	HordeAPIKey  string `envconfig:"HORDE_API_KEY"`
	ImageModel   string `envconfig:"VN_IMAGE_MODEL"`
	ImageWidth   int    `envconfig:"VN_IMAGE_WIDTH" default:"1280"`
	ImageHeight  int    `envconfig:"VN_IMAGE_HEIGHT" default:"720"`
	SpriteWidth  int    `envconfig:"VN_SPRITE_WIDTH" default:"512"`
	SpriteHeight int    `envconfig:"VN_SPRITE_HEIGHT" default:"768"`
	ImageSteps   int    `envconfig:"VN_IMAGE_STEPS" default:"28"`

	// Retry policy shared by both generators.
	MaxAttempts    int           `envconfig:"VN_MAX_ATTEMPTS" default:"3"`
	BaseRetryDelay time.Duration `envconfig:"VN_BASE_RETRY_DELAY" default:"2s"`

	SituationsFile string `envconfig:"VN_SITUATIONS_FILE" default:"situations.yaml"`
	OutputDir      string `envconfig:"VN_OUTPUT_DIR" default:"project"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	switch s.TextBackend {
	case BackendOllama, BackendOpenAI, BackendClaude:
	default:
		return Settings{}, fmt.Errorf("unknown text backend %q", s.TextBackend)
	}
	return s, nil
}

// Retry builds the retry policy both generators share.
func (s Settings) Retry() RetryPolicy {
	return RetryPolicy{MaxAttempts: s.MaxAttempts, BaseDelay: s.BaseRetryDelay}
}
