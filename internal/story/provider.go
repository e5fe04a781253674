package story

import "context"

// Provider abstracts the text-generation backends (OpenAI, Gemini, Claude)
type Provider interface {
	// Name returns the provider name
	Name() string

	// IsEnabled returns whether the provider is configured with valid credentials
	IsEnabled() bool

	// GenerateStory produces story text for the composed prompt
	GenerateStory(ctx context.Context, prompt string) (string, error)
}
