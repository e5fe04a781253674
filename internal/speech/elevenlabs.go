package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/verdantworks/soilstory/pkg/types"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io"
	defaultVoiceID    = "21m00Tcm4TlvDq8ikWAM"
)

// ElevenLabs synthesizes narration through the ElevenLabs REST API
type ElevenLabs struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

// NewElevenLabs creates the ElevenLabs backend
func NewElevenLabs(config types.ElevenLabsConfig) *ElevenLabs {
	voiceID := config.VoiceID
	if voiceID == "" {
		voiceID = defaultVoiceID
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &ElevenLabs{
		apiKey:  config.APIKey,
		voiceID: voiceID,
		baseURL: elevenLabsBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the backend name
func (e *ElevenLabs) Name() string {
	return "elevenlabs"
}

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize posts the text to the configured voice and stores the mp3
func (e *ElevenLabs) Synthesize(ctx context.Context, text, basePath string) (string, error) {
	if e.apiKey == "" {
		return "", fmt.Errorf("elevenlabs API key not configured")
	}

	payload, err := json.Marshal(elevenLabsRequest{
		Text: text,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       0.4,
			SimilarityBoost: 0.8,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", e.baseURL, e.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tts request returned status %d", resp.StatusCode)
	}

	path := basePath + ".mp3"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}
