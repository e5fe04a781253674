package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/verdantworks/soilstory/pkg/types"
)

// OpenAI synthesizes narration through the OpenAI speech endpoint
type OpenAI struct {
	client  *openai.Client
	model   openai.SpeechModel
	voice   openai.SpeechVoice
	timeout time.Duration
	apiKey  string
}

// NewOpenAI creates the OpenAI TTS backend
func NewOpenAI(config types.OpenAIConfig) *OpenAI {
	model := openai.TTSModel1
	if config.Model != "" {
		model = openai.SpeechModel(config.Model)
	}

	voice := openai.VoiceAlloy
	if config.Voice != "" {
		voice = openai.SpeechVoice(config.Voice)
	}

	return &OpenAI{
		client:  openai.NewClient(config.APIKey),
		model:   model,
		voice:   voice,
		timeout: config.Timeout,
		apiKey:  config.APIKey,
	}
}

// Name returns the backend name
func (o *OpenAI) Name() string {
	return "openai"
}

// Synthesize streams generated speech into basePath + ".mp3"
func (o *OpenAI) Synthesize(ctx context.Context, text, basePath string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("openai API key not configured")
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: o.model,
		Input: text,
		Voice: o.voice,
	})
	if err != nil {
		return "", fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Close()

	path := basePath + ".mp3"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}
