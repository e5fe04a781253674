package video

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/verdantworks/soilstory/pkg/types"
)

const (
	defaultVeoModel   = "veo-2.0-generate-001"
	defaultVeoTimeout = 5 * time.Minute
	veoPollInterval   = 5 * time.Second
)

// VeoProvider generates a video through the Veo long-running operation,
// conditioning on the uploaded soil photo
type VeoProvider struct {
	logger   zerolog.Logger
	client   *genai.Client
	model    string
	timeout  time.Duration
	mediaDir string
	apiKey   string
}

// NewVeoProvider creates the Veo video provider. A missing API key is
// detected by CheckConfig, not here.
func NewVeoProvider(logger zerolog.Logger, config types.VeoConfig, mediaDir string) (*VeoProvider, error) {
	p := &VeoProvider{
		logger:   logger.With().Str("component", "video-veo").Logger(),
		model:    config.Model,
		timeout:  config.Timeout,
		mediaDir: mediaDir,
		apiKey:   config.APIKey,
	}
	if p.model == "" {
		p.model = defaultVeoModel
	}
	if p.timeout == 0 {
		p.timeout = defaultVeoTimeout
	}

	if config.APIKey != "" {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: config.APIKey,
		})
		if err != nil {
			return nil, err
		}
		p.client = client
	}

	return p, nil
}

// Name returns the provider name
func (p *VeoProvider) Name() string {
	return "veo"
}

// CheckConfig fails fast when the API key is absent
func (p *VeoProvider) CheckConfig() error {
	if p.apiKey == "" || p.client == nil {
		return &ConfigError{Provider: p.Name(), Reason: "VEO_API_KEY not set"}
	}
	return nil
}

// Generate starts the Veo operation, polls it to completion and stores the
// resulting video bytes
func (p *VeoProvider) Generate(ctx context.Context, storyText, imagePath string) (types.VideoArtifact, error) {
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return types.VideoArtifact{}, &InvalidInputError{Reason: fmt.Sprintf("cannot read source image: %v", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Narrative: %s\nGenerate a short 720p video suitable for gardening tips, with calm pacing.", storyText)
	image := &genai.Image{
		ImageBytes: imageBytes,
		MIMEType:   mimeTypeForImage(imagePath),
	}
	config := &genai.GenerateVideosConfig{
		AspectRatio:     "16:9",
		DurationSeconds: genai.Ptr[int32](10),
	}

	p.logger.Info().Str("model", p.model).Msg("starting veo video generation")

	op, err := p.client.Models.GenerateVideos(ctx, p.model, prompt, image, config)
	if err != nil {
		return types.VideoArtifact{}, &RemoteError{Provider: p.Name(), Err: err}
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return types.VideoArtifact{}, &RemoteError{Provider: p.Name(), Err: ctx.Err()}
		case <-time.After(veoPollInterval):
		}

		op, err = p.client.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return types.VideoArtifact{}, &RemoteError{Provider: p.Name(), Err: err}
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return types.VideoArtifact{}, &MalformedResponseError{Provider: p.Name(), Reason: "operation completed without generated videos"}
	}

	generated := op.Response.GeneratedVideos[0].Video
	if generated == nil {
		return types.VideoArtifact{}, &MalformedResponseError{Provider: p.Name(), Reason: "generated video entry is empty"}
	}

	if len(generated.VideoBytes) == 0 {
		data, err := p.client.Files.Download(ctx, generated, nil)
		if err != nil {
			return types.VideoArtifact{}, &RemoteError{Provider: p.Name(), Err: fmt.Errorf("video download failed: %w", err)}
		}
		generated.VideoBytes = data
	}
	if len(generated.VideoBytes) == 0 {
		return types.VideoArtifact{}, &MalformedResponseError{Provider: p.Name(), Reason: "downloaded video is empty"}
	}

	return writeArtifact(p.mediaDir, remoteArtifactName("veo", imagePath), generated.VideoBytes)
}
