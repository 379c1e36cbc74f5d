package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"pranik/internal/ports"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModel   = "gemini-1.5-flash"
)

// ErrMissingAPIKey is returned by Generate when no credential is configured.
var ErrMissingAPIKey = errors.New("LLM API key is not configured")

// Config controls the OpenAI-compatible chat completion endpoint.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Generator implements ports.TextGenerator with a single chat completion
// per prompt. Any OpenAI-compatible endpoint works, Gemini by default.
type Generator struct {
	client *openai.Client
	model  string
}

func NewGenerator(cfg Config) *Generator {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}

	g := &Generator{model: cfg.Model}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return g
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	// No client-wide timeout: the caller's context bounds each request.
	if cfg.HTTPClient != nil {
		config.HTTPClient = cfg.HTTPClient
	}
	g.client = openai.NewClientWithConfig(config)
	return g
}

// Configured reports whether a credential was supplied.
func (g *Generator) Configured() bool { return g.client != nil }

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrMissingAPIKey
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ ports.TextGenerator = (*Generator)(nil)
