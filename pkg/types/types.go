package types

import "time"

// Config represents the application configuration
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Story    StoryConfig    `yaml:"story"`
	Video    VideoConfig    `yaml:"video"`
	Speech   SpeechConfig   `yaml:"speech"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
}

// StorageConfig defines where uploaded photos and generated media live
type StorageConfig struct {
	UploadsDir string `yaml:"uploads_dir"`
	MediaDir   string `yaml:"media_dir"`
}

// AnalyzerConfig defines classifier artifact locations
type AnalyzerConfig struct {
	ModelsDir string `yaml:"models_dir"`
}

// StoryConfig selects the text-generation provider
type StoryConfig struct {
	Provider string `yaml:"provider"` // "openai", "gemini", "claude", or "" for none

	OpenAI    OpenAIConfig    `yaml:"openai"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
}

// VideoConfig selects the video-generation provider
type VideoConfig struct {
	Provider string `yaml:"provider"` // "gemini" (default), "veo", or "local"

	Gemini GeminiConfig `yaml:"gemini"`
	Veo    VeoConfig    `yaml:"veo"`
}

// SpeechConfig selects the speech-synthesis provider for local compositing
type SpeechConfig struct {
	Provider string `yaml:"provider"` // "openai", "elevenlabs", or "silent"

	OpenAI     OpenAIConfig     `yaml:"openai"`
	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs"`
}

// FFmpegConfig defines ffmpeg execution parameters
type FFmpegConfig struct {
	Threads int `yaml:"threads"`
	FPS     int `yaml:"fps"`
}

// OpenAIConfig for GPT models and TTS
type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"` // e.g., "gpt-4o-mini" or "tts-1"
	Voice   string        `yaml:"voice"` // TTS only, e.g., "alloy"
	Timeout time.Duration `yaml:"timeout"`
}

// GeminiConfig for Gemini text and video models
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"` // e.g., "gemini-1.5-flash"
	Timeout time.Duration `yaml:"timeout"`
}

// AnthropicConfig for Claude
type AnthropicConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"` // e.g., "claude-3-5-haiku-latest"
	Timeout time.Duration `yaml:"timeout"`
}

// VeoConfig for Veo video generation via the Gemini API
type VeoConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"` // e.g., "veo-2.0-generate-001"
	Timeout time.Duration `yaml:"timeout"`
}

// ElevenLabsConfig for ElevenLabs TTS
type ElevenLabsConfig struct {
	APIKey  string        `yaml:"api_key"`
	VoiceID string        `yaml:"voice_id"`
	Timeout time.Duration `yaml:"timeout"`
}

// AnalysisResult maps soil property keys to predictions rounded to 3 decimals.
// Keys are always P, pH, OM, EC and moisture; moisture is bounded to [0,1].
type AnalysisResult map[string]float64

// PropertyKeys are the classifier-backed soil properties, in report order
var PropertyKeys = []string{"P", "pH", "OM", "EC"}

// WeatherSnapshot is an already-resolved weather observation for the
// photo's location. All fields come from an external lookup.
type WeatherSnapshot struct {
	TempC       float64 `json:"tempC"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure,omitempty"`
	WindSpeed   float64 `json:"windSpeed,omitempty"`
	Description string  `json:"weather"`
	Rain1h      float64 `json:"rain1h,omitempty"`
}

// Location is the photo's resolved coordinates
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// VideoArtifact is a generated video: a local file plus the URL path the
// serving layer resolves to it
type VideoArtifact struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// PipelineInput contains the initial pipeline parameters
type PipelineInput struct {
	ImagePath string
	Weather   *WeatherSnapshot // optional
	Location  *Location        // optional
}

// PipelineResult collects the artifacts of one full run
type PipelineResult struct {
	Analysis AnalysisResult
	Story    string
	Title    string
	Video    VideoArtifact
}
