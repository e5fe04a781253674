package analyzer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// encodePNG renders a solid-color image to PNG bytes
func encodePNG(t *testing.T, width, height int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name: "valid png",
			data: encodePNG(t, 10, 10, color.RGBA{R: 120, G: 120, B: 120, A: 255}),
		},
		{
			name:    "garbage bytes",
			data:    []byte("definitely not an image"),
			wantErr: true,
		},
		{
			name:    "empty bytes",
			data:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeImage(tt.data)
			if tt.wantErr {
				var invalidErr *InvalidImageError
				if !errors.As(err, &invalidErr) {
					t.Fatalf("expected InvalidImageError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestExtractUniformImage(t *testing.T) {
	// Every pixel identical: per-channel medians equal the pixel value and
	// the grayscale spread is zero.
	img, err := DecodeImage(encodePNG(t, 100, 100, color.RGBA{R: 128, G: 128, B: 128, A: 255}))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	features := Extract(img)

	if got, want := features.ColorFeature, 384.0; got != want {
		t.Errorf("ColorFeature = %v, want %v", got, want)
	}
	if features.GraySpread != 0 {
		t.Errorf("GraySpread = %v, want 0", features.GraySpread)
	}
}

func TestExtractChannelMedians(t *testing.T) {
	img, err := DecodeImage(encodePNG(t, 20, 20, color.RGBA{R: 200, G: 100, B: 50, A: 255}))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	features := Extract(img)

	// median(G) + median(B) + median(R)
	if got, want := features.ColorFeature, 350.0; got != want {
		t.Errorf("ColorFeature = %v, want %v", got, want)
	}

	// Uniform color still has zero intensity spread
	if features.GraySpread != 0 {
		t.Errorf("GraySpread = %v, want 0", features.GraySpread)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	data := encodePNG(t, 32, 32, color.RGBA{R: 90, G: 60, B: 30, A: 255})

	img1, _ := DecodeImage(data)
	img2, _ := DecodeImage(data)

	f1 := Extract(img1)
	f2 := Extract(img2)

	if f1 != f2 {
		t.Errorf("extraction not reproducible: %+v vs %+v", f1, f2)
	}
}

func TestExtractSpreadNonUniform(t *testing.T) {
	// Half black, half white: large intensity spread
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.RGBA{A: 255}
			if x >= 5 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	features := Extract(img)
	if features.GraySpread < 100 {
		t.Errorf("GraySpread = %v, expected large spread for black/white image", features.GraySpread)
	}
	if math.IsNaN(features.ColorFeature) {
		t.Error("ColorFeature is NaN")
	}
}
