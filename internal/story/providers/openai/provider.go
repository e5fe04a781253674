package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/verdantworks/soilstory/pkg/types"
)

const defaultModel = "gpt-4o-mini"

// Provider implements story.Provider for OpenAI
type Provider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	enabled bool
}

// NewProvider creates a new OpenAI provider. A missing API key yields a
// disabled provider, not an error.
func NewProvider(config types.OpenAIConfig) *Provider {
	if config.APIKey == "" {
		return &Provider{enabled: false}
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client:  openai.NewClient(config.APIKey),
		model:   model,
		timeout: config.Timeout,
		enabled: true,
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai"
}

// IsEnabled returns whether the provider is configured
func (p *Provider) IsEnabled() bool {
	return p.enabled
}

// GenerateStory runs a single chat completion over the composed prompt
func (p *Provider) GenerateStory(ctx context.Context, prompt string) (string, error) {
	if !p.enabled {
		return "", fmt.Errorf("openai provider is disabled")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
