// Package speech synthesizes narration audio for locally composited videos.
// Backends are interchangeable; the silent backend writes an empty file so
// the video stage can always proceed without narration.
package speech

import (
	"context"
	"os"
	"path/filepath"
)

// Synthesizer converts story text into an audio file
type Synthesizer interface {
	// Name returns the backend name
	Name() string

	// Synthesize writes narration for text to basePath + ".mp3" and
	// returns the written path
	Synthesize(ctx context.Context, text, basePath string) (string, error)
}

// Silent is the no-op backend: it produces a zero-byte file, which the
// compositor treats as "no audio"
type Silent struct{}

// Name returns the backend name
func (Silent) Name() string {
	return "silent"
}

// Synthesize writes an empty audio file
func (Silent) Synthesize(_ context.Context, _ string, basePath string) (string, error) {
	path := basePath + ".mp3"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return "", err
	}
	return path, nil
}
