package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/verdantworks/soilstory/pkg/types"
)

const defaultGeminiVideoModel = "gemini-1.5-flash-exp"

// GeminiProvider asks a Gemini model to generate a short educational video
// and extracts the inline video payload from the response parts
type GeminiProvider struct {
	logger   zerolog.Logger
	client   *genai.Client
	model    string
	mediaDir string
	apiKey   string
}

// NewGeminiProvider creates the Gemini video provider. A missing API key
// is detected by CheckConfig, not here.
func NewGeminiProvider(logger zerolog.Logger, config types.GeminiConfig, mediaDir string) (*GeminiProvider, error) {
	p := &GeminiProvider{
		logger:   logger.With().Str("component", "video-gemini").Logger(),
		model:    config.Model,
		mediaDir: mediaDir,
		apiKey:   config.APIKey,
	}
	if p.model == "" {
		p.model = defaultGeminiVideoModel
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
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// CheckConfig fails fast when the API key is absent
func (p *GeminiProvider) CheckConfig() error {
	if p.apiKey == "" || p.client == nil {
		return &ConfigError{Provider: p.Name(), Reason: "GEMINI_API_KEY not set"}
	}
	return nil
}

// Generate requests a video and stores the first inline video part
func (p *GeminiProvider) Generate(ctx context.Context, storyText, imagePath string) (types.VideoArtifact, error) {
	prompt := fmt.Sprintf(`Create a short educational video about soil health based on this story:

%s

The video should be:
- 10-15 seconds long
- Educational and informative
- Suitable for gardeners
- Include visual elements related to soil, plants, and gardening
- Have a calm, professional tone`, storyText)

	p.logger.Info().Str("model", p.model).Msg("requesting gemini video generation")

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return types.VideoArtifact{}, &RemoteError{Provider: p.Name(), Err: err}
	}

	data, err := extractVideoPart(resp)
	if err != nil {
		return types.VideoArtifact{}, err
	}

	return writeArtifact(p.mediaDir, remoteArtifactName("gemini", imagePath), data)
}

// extractVideoPart scans response candidates for an inline video blob
func extractVideoPart(resp *genai.GenerateContentResponse) ([]byte, error) {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			blob := part.InlineData
			if blob == nil {
				continue
			}
			if strings.HasPrefix(blob.MIMEType, "video/") && len(blob.Data) > 0 {
				return blob.Data, nil
			}
		}
	}
	return nil, &MalformedResponseError{Provider: "gemini", Reason: "no video found in response parts"}
}
