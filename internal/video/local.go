package video

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/verdantworks/soilstory/internal/ffmpeg"
	"github.com/verdantworks/soilstory/internal/speech"
	"github.com/verdantworks/soilstory/pkg/types"
)

const (
	// minClipSeconds is the floor for the reading-speed duration heuristic
	minClipSeconds = 6.0
	// wordsPerSecond is the assumed narration reading speed
	wordsPerSecond = 2.5
	// captionWrapColumns is where caption lines wrap for the drawtext layer
	captionWrapColumns = 48
)

// LocalCompositor synthesizes a video from a still image, synthesized
// narration and a caption overlay. It never depends on a remote service
// and is the guaranteed backstop of the fallback chain.
type LocalCompositor struct {
	logger   zerolog.Logger
	runner   ffmpeg.Runner
	speech   speech.Synthesizer
	mediaDir string
	fps      int
}

// NewLocalCompositor creates the local compositing provider
func NewLocalCompositor(logger zerolog.Logger, runner ffmpeg.Runner, synth speech.Synthesizer, mediaDir string, fps int) *LocalCompositor {
	return &LocalCompositor{
		logger:   logger.With().Str("component", "video-local").Logger(),
		runner:   runner,
		speech:   synth,
		mediaDir: mediaDir,
		fps:      fps,
	}
}

// Name returns the provider name
func (c *LocalCompositor) Name() string {
	return "local"
}

// CheckConfig always passes: local compositing has no credentials
func (c *LocalCompositor) CheckConfig() error {
	return nil
}

// Generate implements the Provider interface
func (c *LocalCompositor) Generate(ctx context.Context, storyText, imagePath string) (types.VideoArtifact, error) {
	return c.Compose(ctx, storyText, imagePath)
}

// Compose renders the still-image video. The output filename derives from
// the source image's base name, so repeated calls on the same image
// overwrite the previous result.
func (c *LocalCompositor) Compose(ctx context.Context, storyText, imagePath string) (types.VideoArtifact, error) {
	if strings.TrimSpace(storyText) == "" {
		return types.VideoArtifact{}, &InvalidInputError{Reason: "story text is empty"}
	}
	if _, err := os.Stat(imagePath); err != nil {
		return types.VideoArtifact{}, &InvalidInputError{Reason: fmt.Sprintf("source image not accessible: %v", err)}
	}
	if err := os.MkdirAll(c.mediaDir, 0755); err != nil {
		return types.VideoArtifact{}, &CompositionError{Err: err}
	}

	baseName := "story_" + imageBaseName(imagePath)
	audioPath := c.synthesizeNarration(ctx, storyText, baseName)

	duration := clipDuration(storyText)
	outputName := baseName + ".mp4"
	outputPath := filepath.Join(c.mediaDir, outputName)

	captionFile := c.writeCaptionFile(storyText, baseName)
	if captionFile != "" {
		defer os.Remove(captionFile)
	}

	spec := ffmpeg.StillVideoSpec{
		ImagePath:   imagePath,
		AudioPath:   audioPath,
		CaptionFile: captionFile,
		Duration:    duration,
		FPS:         c.fps,
		OutputPath:  outputPath,
	}

	if err := c.runner.Run(ctx, ffmpeg.BuildStillVideoArgs(spec)); err != nil {
		if spec.CaptionFile == "" {
			return types.VideoArtifact{}, &CompositionError{Err: err}
		}
		// Caption rendering is environment-dependent (drawtext needs
		// libfreetype); degrade to an uncaptioned video before giving up.
		c.logger.Warn().Err(err).Msg("caption render failed, retrying without captions")
		spec.CaptionFile = ""
		if err := c.runner.Run(ctx, ffmpeg.BuildStillVideoArgs(spec)); err != nil {
			return types.VideoArtifact{}, &CompositionError{Err: err}
		}
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return types.VideoArtifact{}, &CompositionError{Err: fmt.Errorf("composited video %s is missing or empty", outputPath)}
	}

	c.logger.Info().
		Str("output", outputPath).
		Float64("duration", duration).
		Bool("narrated", audioPath != "").
		Msg("local composition complete")

	return types.VideoArtifact{
		Path: outputPath,
		URL:  "/media/" + outputName,
	}, nil
}

// synthesizeNarration runs the speech backend and returns the audio path,
// or "" when narration is unavailable. A failing or zero-byte backend
// yields a silent video, never an error.
func (c *LocalCompositor) synthesizeNarration(ctx context.Context, storyText, baseName string) string {
	audioBase := filepath.Join(c.mediaDir, baseName+"_audio")
	audioPath, err := c.speech.Synthesize(ctx, storyText, audioBase)
	if err != nil {
		c.logger.Warn().Err(err).Str("backend", c.speech.Name()).Msg("narration synthesis failed, video will be silent")
		return ""
	}

	info, err := os.Stat(audioPath)
	if err != nil || info.Size() == 0 {
		c.logger.Warn().Str("audio", audioPath).Msg("narration file empty, video will be silent")
		return ""
	}

	return audioPath
}

// writeCaptionFile wraps the story for drawtext and writes the textfile.
// Returns "" when the file cannot be written; captions are then skipped.
func (c *LocalCompositor) writeCaptionFile(storyText, baseName string) string {
	path := filepath.Join(c.mediaDir, baseName+"_caption.txt")
	if err := os.WriteFile(path, []byte(wrapCaption(storyText, captionWrapColumns)), 0644); err != nil {
		c.logger.Warn().Err(err).Msg("caption file write failed, captions disabled")
		return ""
	}
	return path
}

// clipDuration applies the reading-speed heuristic: at least six seconds,
// otherwise word count over the assumed pace
func clipDuration(storyText string) float64 {
	words := len(strings.Fields(storyText))
	return math.Max(minClipSeconds, float64(words)/wordsPerSecond)
}

// wrapCaption re-flows text to at most width columns per line, preserving
// paragraph breaks
func wrapCaption(text string, width int) string {
	var out strings.Builder
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		lineLen := 0
		for _, word := range strings.Fields(paragraph) {
			if lineLen > 0 && lineLen+1+len(word) > width {
				out.WriteByte('\n')
				lineLen = 0
			} else if lineLen > 0 {
				out.WriteByte(' ')
				lineLen++
			}
			out.WriteString(word)
			lineLen += len(word)
		}
	}
	return out.String()
}
