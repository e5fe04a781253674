package video

import (
	"context"
	"strings"

	"github.com/verdantworks/soilstory/pkg/types"
)

// Provider is one video-generation backend behind a uniform interface
type Provider interface {
	// Name returns the provider name
	Name() string

	// CheckConfig verifies the provider's preconditions (credentials,
	// required settings) without touching the network. Returns a
	// ConfigError when they fail.
	CheckConfig() error

	// Generate produces a video from the story text and source image
	Generate(ctx context.Context, storyText, imagePath string) (types.VideoArtifact, error)
}

// ProviderSet is the closed set of configurable video providers
type ProviderSet struct {
	Gemini Provider
	Veo    Provider
	Local  Provider
}

// Select resolves a configured provider name. Unrecognized or empty names
// select the Gemini provider, never an error.
func (s ProviderSet) Select(name string) Provider {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "veo":
		return s.Veo
	case "local":
		return s.Local
	default:
		return s.Gemini
	}
}
