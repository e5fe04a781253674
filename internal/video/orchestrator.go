package video

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/verdantworks/soilstory/pkg/types"
)

// state is one node of the orchestration state machine
type state int

const (
	stateSelectProvider state = iota
	stateAttemptPrimary
	stateAttemptFallback
	stateSuccess
	stateFatal
)

func (s state) String() string {
	switch s {
	case stateSelectProvider:
		return "SELECT_PROVIDER"
	case stateAttemptPrimary:
		return "ATTEMPT_PRIMARY"
	case stateAttemptFallback:
		return "ATTEMPT_FALLBACK"
	case stateSuccess:
		return "SUCCESS"
	case stateFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Orchestrator runs the provider fallback state machine:
//
//	SELECT_PROVIDER -> ATTEMPT_PRIMARY -> (SUCCESS | ATTEMPT_FALLBACK) -> (SUCCESS | FATAL)
//
// The fallback chain is depth-1: any primary failure falls through to the
// local compositor, which has no external dependency. A failure of the
// local compositor itself is fatal.
type Orchestrator struct {
	logger       zerolog.Logger
	providers    ProviderSet
	providerName string
}

// NewOrchestrator creates an orchestrator over the closed provider set.
// providerName is the configured selection; unrecognized names fall back to
// the default remote provider.
func NewOrchestrator(logger zerolog.Logger, providers ProviderSet, providerName string) *Orchestrator {
	return &Orchestrator{
		logger:       logger.With().Str("component", "video-orchestrator").Logger(),
		providers:    providers,
		providerName: providerName,
	}
}

// Generate produces a video artifact for the story, falling back to local
// compositing when the selected remote provider fails for any reason.
func (o *Orchestrator) Generate(ctx context.Context, storyText, imagePath string) (types.VideoArtifact, error) {
	var (
		current  = stateSelectProvider
		primary  Provider
		artifact types.VideoArtifact
		lastErr  error
	)

	for {
		switch current {
		case stateSelectProvider:
			primary = o.providers.Select(o.providerName)
			o.logger.Info().
				Str("state", current.String()).
				Str("configured", o.providerName).
				Str("provider", primary.Name()).
				Msg("video provider selected")
			current = stateAttemptPrimary

		case stateAttemptPrimary:
			artifact, lastErr = o.attempt(ctx, primary, storyText, imagePath)
			if lastErr == nil {
				current = stateSuccess
				break
			}
			o.logger.Warn().Err(lastErr).Str("provider", primary.Name()).Msg("primary video provider failed")
			if primary == o.providers.Local {
				current = stateFatal
			} else {
				current = stateAttemptFallback
			}

		case stateAttemptFallback:
			o.logger.Info().Str("state", current.String()).Msg("falling back to local compositing")
			artifact, lastErr = o.attempt(ctx, o.providers.Local, storyText, imagePath)
			if lastErr == nil {
				current = stateSuccess
				break
			}
			o.logger.Error().Err(lastErr).Msg("local compositing failed")
			current = stateFatal

		case stateSuccess:
			o.logger.Info().Str("path", artifact.Path).Str("url", artifact.URL).Msg("video generated")
			return artifact, nil

		case stateFatal:
			return types.VideoArtifact{}, &FatalError{Err: lastErr}
		}
	}
}

// attempt runs one provider: precondition check first so a guaranteed
// failure never wastes a network call, then the generation itself.
func (o *Orchestrator) attempt(ctx context.Context, p Provider, storyText, imagePath string) (types.VideoArtifact, error) {
	if err := p.CheckConfig(); err != nil {
		return types.VideoArtifact{}, err
	}
	return p.Generate(ctx, storyText, imagePath)
}
