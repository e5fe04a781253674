package video

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImageBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"uploads/soil.jpg", "soil"},
		{"soil.png", "soil"},
		{"/abs/path/garden.photo.jpeg", "garden.photo"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := imageBaseName(tt.in); got != tt.want {
			t.Errorf("imageBaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRemoteArtifactName(t *testing.T) {
	name := remoteArtifactName("veo", "uploads/soil.jpg")

	if !strings.HasPrefix(name, "veo_soil_") {
		t.Errorf("name = %q, want veo_soil_ prefix", name)
	}
	if !strings.HasSuffix(name, ".mp4") {
		t.Errorf("name = %q, want .mp4 suffix", name)
	}

	// Repeated attempts must not collide
	if other := remoteArtifactName("veo", "uploads/soil.jpg"); other == name {
		t.Errorf("two attempts produced the same name: %q", name)
	}
}

func TestMimeTypeForImage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"soil.png", "image/png"},
		{"soil.PNG", "image/png"},
		{"soil.gif", "image/gif"},
		{"soil.jpg", "image/jpeg"},
		{"soil.jpeg", "image/jpeg"},
		{"soil", "image/jpeg"},
	}

	for _, tt := range tests {
		if got := mimeTypeForImage(tt.in); got != tt.want {
			t.Errorf("mimeTypeForImage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteArtifact(t *testing.T) {
	mediaDir := filepath.Join(t.TempDir(), "media")

	artifact, err := writeArtifact(mediaDir, "gemini_soil_abc123.mp4", []byte("video bytes"))
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if artifact.URL != "/media/gemini_soil_abc123.mp4" {
		t.Errorf("URL = %q", artifact.URL)
	}

	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		t.Fatalf("artifact not on disk: %v", err)
	}
	if string(data) != "video bytes" {
		t.Errorf("artifact content = %q", data)
	}
}
