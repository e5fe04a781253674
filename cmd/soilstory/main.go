package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/verdantworks/soilstory/internal/analyzer"
	"github.com/verdantworks/soilstory/internal/ffmpeg"
	"github.com/verdantworks/soilstory/internal/logging"
	"github.com/verdantworks/soilstory/internal/pipeline"
	"github.com/verdantworks/soilstory/internal/speech"
	"github.com/verdantworks/soilstory/internal/story"
	storyclaude "github.com/verdantworks/soilstory/internal/story/providers/claude"
	storygemini "github.com/verdantworks/soilstory/internal/story/providers/gemini"
	storyopenai "github.com/verdantworks/soilstory/internal/story/providers/openai"
	"github.com/verdantworks/soilstory/internal/video"
	"github.com/verdantworks/soilstory/pkg/types"
)

// createStoryProvider creates the configured text-generation provider.
// An empty provider name means template-only composition.
func createStoryProvider(config types.StoryConfig) (story.Provider, error) {
	switch config.Provider {
	case "openai":
		return storyopenai.NewProvider(config.OpenAI), nil

	case "google", "gemini":
		return storygemini.NewProvider(config.Gemini)

	case "anthropic", "claude":
		return storyclaude.NewProvider(config.Anthropic), nil

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported story provider: %s (supported: openai, gemini, claude)", config.Provider)
	}
}

// createSpeechSynthesizer picks the narration backend; anything without a
// usable credential degrades to the silent backend
func createSpeechSynthesizer(config types.SpeechConfig) speech.Synthesizer {
	switch config.Provider {
	case "openai":
		if config.OpenAI.APIKey != "" {
			return speech.NewOpenAI(config.OpenAI)
		}
	case "elevenlabs":
		if config.ElevenLabs.APIKey != "" {
			return speech.NewElevenLabs(config.ElevenLabs)
		}
	}
	return speech.Silent{}
}

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "configs/soilstory.yaml", "Path to configuration file")
		imagePath  = flag.String("image", "", "Path to soil photo (required)")
		lat        = flag.Float64("lat", 0, "Latitude of the photo location (optional, requires --lon)")
		lon        = flag.Float64("lon", 0, "Longitude of the photo location (optional, requires --lat)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	logging.Init(*verbose)
	logger := log.Logger

	if *imagePath == "" {
		logger.Fatal().Msg("--image flag is required")
	}

	// Graceful shutdown on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("received interrupt signal, shutting down")
		cancel()
	}()

	config, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	registry := analyzer.NewRegistry(logger, config.Analyzer.ModelsDir)
	defer registry.Close()
	soil := analyzer.New(logger, registry)

	storyProvider, err := createStoryProvider(config.Story)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create story provider")
	}
	if storyProvider != nil && !storyProvider.IsEnabled() {
		logger.Warn().Str("provider", storyProvider.Name()).Msg("story provider has no API key, template fallback will be used")
	}
	composer := story.NewComposer(logger, storyProvider)

	ffmpegExec, err := ffmpeg.New(logger, config.FFmpeg.Threads)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize ffmpeg")
	}

	synth := createSpeechSynthesizer(config.Speech)
	logger.Info().Str("backend", synth.Name()).Msg("speech backend selected")

	mediaDir := config.Storage.MediaDir
	local := video.NewLocalCompositor(logger, ffmpegExec, synth, mediaDir, config.FFmpeg.FPS)

	geminiVideo, err := video.NewGeminiProvider(logger, config.Video.Gemini, mediaDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create gemini video provider")
	}
	veoVideo, err := video.NewVeoProvider(logger, config.Video.Veo, mediaDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create veo video provider")
	}

	orchestrator := video.NewOrchestrator(logger, video.ProviderSet{
		Gemini: geminiVideo,
		Veo:    veoVideo,
		Local:  local,
	}, config.Video.Provider)

	pipe := pipeline.New(logger, soil, composer, orchestrator)

	input := types.PipelineInput{ImagePath: *imagePath}
	if *lat != 0 || *lon != 0 {
		input.Location = &types.Location{Lat: *lat, Lon: *lon}
	}

	if err := pipeline.ValidateInput(input); err != nil {
		logger.Fatal().Err(err).Msg("invalid input")
	}

	result, err := pipe.Run(ctx, input)
	if err != nil {
		logger.Fatal().Err(err).Msg("pipeline execution failed")
	}

	logger.Info().Msg("=== Pipeline Completed Successfully ===")
	for key, value := range result.Analysis {
		logger.Info().Float64(key, value).Msg("analysis")
	}
	logger.Info().Str("title", result.Title).Msg("story")
	fmt.Println()
	fmt.Println(result.Story)
	fmt.Println()
	logger.Info().Str("path", result.Video.Path).Str("url", result.Video.URL).Msg("video")
}

// loadConfig reads and parses the YAML configuration file, expanding
// environment variables before unmarshalling
func loadConfig(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData := os.ExpandEnv(string(data))

	var config types.Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *types.Config) {
	if config.Storage.UploadsDir == "" {
		config.Storage.UploadsDir = "storage/uploads"
	}
	if config.Storage.MediaDir == "" {
		config.Storage.MediaDir = "storage/media"
	}
	if config.Analyzer.ModelsDir == "" {
		config.Analyzer.ModelsDir = "models"
	}
}
