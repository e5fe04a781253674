package speech

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verdantworks/soilstory/pkg/types"
)

func TestSilentSynthesize(t *testing.T) {
	base := filepath.Join(t.TempDir(), "story_soil_audio")

	path, err := Silent{}.Synthesize(context.Background(), "any text", base)
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if path != base+".mp3" {
		t.Errorf("path = %q, want %q", path, base+".mp3")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("silent backend wrote %d bytes, want 0", info.Size())
	}
}

func TestElevenLabsSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = w.Write([]byte("mp3 bytes"))
	}))
	defer server.Close()

	e := NewElevenLabs(types.ElevenLabsConfig{APIKey: "test-key"})
	e.baseURL = server.URL

	base := filepath.Join(t.TempDir(), "narration")
	path, err := e.Synthesize(context.Background(), "Hello soil.", base)
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}

	if gotPath != "/v1/text-to-speech/"+defaultVoiceID {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotBody["text"] != "Hello soil." {
		t.Errorf("request text = %v", gotBody["text"])
	}
	settings, _ := gotBody["voice_settings"].(map[string]any)
	if settings["stability"] != 0.4 || settings["similarity_boost"] != 0.8 {
		t.Errorf("voice settings = %v", settings)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("audio file missing: %v", err)
	}
	if string(data) != "mp3 bytes" {
		t.Errorf("audio content = %q", data)
	}
}

func TestElevenLabsVoiceOverride(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	e := NewElevenLabs(types.ElevenLabsConfig{APIKey: "k", VoiceID: "custom-voice"})
	e.baseURL = server.URL

	if _, err := e.Synthesize(context.Background(), "text", filepath.Join(t.TempDir(), "a")); err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if gotPath != "/v1/text-to-speech/custom-voice" {
		t.Errorf("request path = %q", gotPath)
	}
}

func TestElevenLabsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	e := NewElevenLabs(types.ElevenLabsConfig{APIKey: "bad-key"})
	e.baseURL = server.URL

	_, err := e.Synthesize(context.Background(), "text", filepath.Join(t.TempDir(), "a"))
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestElevenLabsMissingKey(t *testing.T) {
	e := NewElevenLabs(types.ElevenLabsConfig{})

	if _, err := e.Synthesize(context.Background(), "text", filepath.Join(t.TempDir(), "a")); err == nil {
		t.Error("expected error without api key")
	}
}
