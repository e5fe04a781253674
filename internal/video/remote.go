package video

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantworks/soilstory/pkg/types"
)

// imageBaseName is the source image filename without its extension
func imageBaseName(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// remoteArtifactName builds a fresh per-attempt filename: provider tag,
// source image base name and a short random suffix so fallback attempts
// and concurrent runs never collide.
func remoteArtifactName(tag, imagePath string) string {
	return fmt.Sprintf("%s_%s_%s.mp4", tag, imageBaseName(imagePath), uuid.NewString()[:8])
}

// mimeTypeForImage guesses the conditioning image's MIME type by extension
func mimeTypeForImage(imagePath string) string {
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// writeArtifact stores video bytes under the media dir and returns the
// artifact with its servable URL path
func writeArtifact(mediaDir, filename string, data []byte) (types.VideoArtifact, error) {
	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return types.VideoArtifact{}, fmt.Errorf("failed to create media dir: %w", err)
	}

	path := filepath.Join(mediaDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return types.VideoArtifact{}, fmt.Errorf("failed to write video file: %w", err)
	}

	return types.VideoArtifact{
		Path: path,
		URL:  "/media/" + filename,
	}, nil
}
