package ffmpeg

import (
	"fmt"
	"strings"
)

// Default encoding settings for composited videos
const (
	DefaultFPS        = 24
	DefaultCRF        = 23
	DefaultPreset     = "medium"
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)

// StillVideoSpec describes a still-image video render: one looped frame for
// a fixed duration, optional narration audio and an optional caption layer.
type StillVideoSpec struct {
	ImagePath   string
	AudioPath   string // empty means a silent video
	CaptionFile string // pre-wrapped drawtext textfile; empty disables captions
	Duration    float64
	FPS         int
	OutputPath  string
}

// BuildStillVideoArgs constructs the ffmpeg argument list for a still-image
// composition. Pure function of the spec, so it is directly testable.
func BuildStillVideoArgs(spec StillVideoSpec) []string {
	fps := spec.FPS
	if fps == 0 {
		fps = DefaultFPS
	}

	args := []string{"-loop", "1", "-i", spec.ImagePath}
	if spec.AudioPath != "" {
		args = append(args, "-i", spec.AudioPath)
	}

	// libx264 requires even dimensions
	filters := []string{"scale=trunc(iw/2)*2:trunc(ih/2)*2"}
	if spec.CaptionFile != "" {
		filters = append(filters, captionFilter(spec.CaptionFile))
	}
	args = append(args, "-vf", strings.Join(filters, ","))

	args = append(args,
		"-t", fmt.Sprintf("%.2f", spec.Duration),
		"-r", fmt.Sprintf("%d", fps),
		"-c:v", DefaultVideoCodec,
		"-pix_fmt", "yuv420p",
		"-crf", fmt.Sprintf("%d", DefaultCRF),
		"-preset", DefaultPreset,
	)

	if spec.AudioPath != "" {
		args = append(args, "-c:a", DefaultAudioCodec, "-shortest")
	}

	args = append(args, spec.OutputPath)
	return args
}

// captionFilter overlays the story text in the lower two-thirds of the
// frame: left margin 50 px, boxed white text across the frame width.
func captionFilter(textFile string) string {
	return fmt.Sprintf(
		"drawtext=textfile='%s':fontcolor=white:fontsize=32:line_spacing=8:"+
			"box=1:boxcolor=black@0.45:boxborderw=12:x=50:y=h*0.65",
		escapeFilterPath(textFile),
	)
}

// escapeFilterPath escapes characters that terminate ffmpeg filter options
func escapeFilterPath(path string) string {
	escaped := strings.ReplaceAll(path, "\\", "/")
	escaped = strings.ReplaceAll(escaped, ":", "\\:")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")
	return escaped
}
