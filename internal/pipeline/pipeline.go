package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verdantworks/soilstory/internal/analyzer"
	"github.com/verdantworks/soilstory/internal/story"
	"github.com/verdantworks/soilstory/internal/video"
	"github.com/verdantworks/soilstory/pkg/types"
)

// Pipeline chains the three generation stages: soil analysis, story
// composition and video orchestration. Each stage's output is the next
// stage's sole input; stages share no mutable state, so concurrent runs
// are independent.
type Pipeline struct {
	logger   zerolog.Logger
	analyzer *analyzer.Analyzer
	composer *story.Composer
	video    *video.Orchestrator
}

// New creates a pipeline from its three stages
func New(logger zerolog.Logger, soil *analyzer.Analyzer, composer *story.Composer, orchestrator *video.Orchestrator) *Pipeline {
	return &Pipeline{
		logger:   logger.With().Str("component", "pipeline").Logger(),
		analyzer: soil,
		composer: composer,
		video:    orchestrator,
	}
}

// ValidateInput checks if the pipeline input is valid
func ValidateInput(input types.PipelineInput) error {
	if input.ImagePath == "" {
		return fmt.Errorf("image path is required")
	}
	return nil
}

// Run executes one full pipeline pass and returns every derived artifact.
// Analysis failure (undecodable image) is terminal; story composition
// never fails; video generation fails only when the local compositor
// itself does.
func (p *Pipeline) Run(ctx context.Context, input types.PipelineInput) (*types.PipelineResult, error) {
	runID := uuid.NewString()
	logger := p.logger.With().Str("run", runID).Logger()
	logger.Info().Str("image", input.ImagePath).Msg("pipeline started")

	imageBytes, err := os.ReadFile(input.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	analysis, err := p.analyzer.Analyze(imageBytes)
	if err != nil {
		return nil, fmt.Errorf("soil analysis failed: %w", err)
	}
	logger.Info().
		Float64("pH", analysis["pH"]).
		Float64("moisture", analysis["moisture"]).
		Msg("soil analyzed")

	storyText := p.composer.Compose(ctx, analysis, input.Weather, input.Location)
	title := story.ExtractTitle(storyText)
	logger.Info().Str("title", title).Int("chars", len(storyText)).Msg("story composed")

	artifact, err := p.video.Generate(ctx, storyText, input.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("video generation failed: %w", err)
	}
	logger.Info().Str("video", artifact.Path).Msg("pipeline complete")

	return &types.PipelineResult{
		Analysis: analysis,
		Story:    storyText,
		Title:    title,
		Video:    artifact,
	}, nil
}
