package claude

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/verdantworks/soilstory/pkg/types"
)

const defaultModel = "claude-3-5-haiku-latest"

// Provider implements story.Provider for Anthropic Claude
type Provider struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	enabled bool
}

// NewProvider creates a new Claude provider. A missing API key yields a
// disabled provider, not an error.
func NewProvider(config types.AnthropicConfig) *Provider {
	if config.APIKey == "" {
		return &Provider{enabled: false}
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client:  anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		model:   model,
		timeout: config.Timeout,
		enabled: true,
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "claude"
}

// IsEnabled returns whether the provider is configured
func (p *Provider) IsEnabled() bool {
	return p.enabled
}

// GenerateStory runs a single messages call over the composed prompt
func (p *Provider) GenerateStory(ctx context.Context, prompt string) (string, error) {
	if !p.enabled {
		return "", fmt.Errorf("claude provider is disabled")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages call failed: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	return b.String(), nil
}
