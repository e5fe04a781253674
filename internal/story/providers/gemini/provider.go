package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/verdantworks/soilstory/pkg/types"
)

const defaultModel = "gemini-1.5-flash"

// Provider implements story.Provider for Google Gemini
type Provider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	enabled bool
}

// NewProvider creates a new Gemini provider. A missing API key yields a
// disabled provider, not an error.
func NewProvider(config types.GeminiConfig) (*Provider, error) {
	if config.APIKey == "" {
		return &Provider{enabled: false}, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client:  client,
		model:   model,
		timeout: config.Timeout,
		enabled: true,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "gemini"
}

// IsEnabled returns whether the provider is configured
func (p *Provider) IsEnabled() bool {
	return p.enabled
}

// GenerateStory runs a single content generation over the composed prompt
func (p *Provider) GenerateStory(ctx context.Context, prompt string) (string, error) {
	if !p.enabled {
		return "", fmt.Errorf("gemini provider is disabled")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}

	return resp.Text(), nil
}
