package analyzer

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/verdantworks/soilstory/pkg/types"
)

// stubClassifier is a mock handle with a fixed prediction or failure
type stubClassifier struct {
	value float64
	err   error
}

func (s *stubClassifier) Predict(feature float64) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.value, nil
}

func fullRegistry() *Registry {
	return NewStaticRegistry(map[string]Classifier{
		"P":  &stubClassifier{value: 25.1234},
		"pH": &stubClassifier{value: 6.5},
		"OM": &stubClassifier{value: 3.2},
		"EC": &stubClassifier{value: 1.8},
	})
}

func newTestAnalyzer(reg ModelSource) *Analyzer {
	return New(zerolog.Nop(), reg)
}

func isRounded3(v float64) bool {
	return v == math.Round(v*1000)/1000
}

func TestAnalyzeAllKeysPresent(t *testing.T) {
	a := newTestAnalyzer(fullRegistry())

	result, err := a.Analyze(encodePNG(t, 100, 100, color.RGBA{R: 128, G: 128, B: 128, A: 255}))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	for _, key := range append(append([]string{}, types.PropertyKeys...), "moisture") {
		v, ok := result[key]
		if !ok {
			t.Errorf("missing key %q in result", key)
			continue
		}
		if !isRounded3(v) {
			t.Errorf("%s = %v, not rounded to 3 decimals", key, v)
		}
	}

	moisture := result["moisture"]
	if moisture < 0 || moisture > 1 {
		t.Errorf("moisture = %v, want value in [0,1]", moisture)
	}
}

func TestAnalyzeRoundsPredictions(t *testing.T) {
	a := newTestAnalyzer(fullRegistry())

	result, err := a.Analyze(encodePNG(t, 10, 10, color.RGBA{R: 50, G: 50, B: 50, A: 255}))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if got, want := result["P"], 25.123; got != want {
		t.Errorf("P = %v, want %v", got, want)
	}
}

func TestAnalyzeInvalidImage(t *testing.T) {
	a := newTestAnalyzer(fullRegistry())

	_, err := a.Analyze([]byte("not an image"))
	var invalidErr *InvalidImageError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidImageError, got %v", err)
	}
}

func TestAnalyzeFallbackFormula(t *testing.T) {
	// Uniform 128 gray: ColorFeature = 384, formula result = 384 mod 10 = 4
	imageBytes := encodePNG(t, 100, 100, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	tests := []struct {
		name     string
		registry *Registry
	}{
		{
			name:     "all models absent",
			registry: NewStaticRegistry(map[string]Classifier{}),
		},
		{
			name: "all models failing",
			registry: NewStaticRegistry(map[string]Classifier{
				"P":  &stubClassifier{err: errors.New("session corrupt")},
				"pH": &stubClassifier{err: errors.New("session corrupt")},
				"OM": &stubClassifier{err: errors.New("session corrupt")},
				"EC": &stubClassifier{err: errors.New("session corrupt")},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(tt.registry)
			result, err := a.Analyze(imageBytes)
			if err != nil {
				t.Fatalf("analyze failed: %v", err)
			}
			for _, key := range types.PropertyKeys {
				if got, want := result[key], 4.0; got != want {
					t.Errorf("%s = %v, want fallback %v", key, got, want)
				}
			}
		})
	}
}

func TestAnalyzePerKeyIndependence(t *testing.T) {
	imageBytes := encodePNG(t, 50, 50, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	full := newTestAnalyzer(fullRegistry())
	fullResult, err := full.Analyze(imageBytes)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	// Drop only the pH model; the siblings must be unaffected
	partial := newTestAnalyzer(NewStaticRegistry(map[string]Classifier{
		"P":  &stubClassifier{value: 25.1234},
		"OM": &stubClassifier{value: 3.2},
		"EC": &stubClassifier{value: 1.8},
	}))
	partialResult, err := partial.Analyze(imageBytes)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	for _, key := range []string{"P", "OM", "EC", "moisture"} {
		if fullResult[key] != partialResult[key] {
			t.Errorf("%s changed when pH model was removed: %v vs %v", key, fullResult[key], partialResult[key])
		}
	}

	// pH itself uses the formula: 384 mod 10 = 4
	if got, want := partialResult["pH"], 4.0; got != want {
		t.Errorf("pH = %v, want fallback %v", got, want)
	}
	if got, want := fullResult["pH"], 6.5; got != want {
		t.Errorf("pH with model = %v, want %v", got, want)
	}
}

func TestAnalyzeMoistureProxy(t *testing.T) {
	// Uniform gray: zero spread, moisture proxy saturates at 1.0
	a := newTestAnalyzer(NewStaticRegistry(nil))

	result, err := a.Analyze(encodePNG(t, 100, 100, color.RGBA{R: 128, G: 128, B: 128, A: 255}))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if got := result["moisture"]; got != 1.0 {
		t.Errorf("moisture = %v, want 1.0 for uniform image", got)
	}
}

func TestStaticRegistryGet(t *testing.T) {
	handle := &stubClassifier{value: 1}
	reg := NewStaticRegistry(map[string]Classifier{"P": handle})

	if reg.Get("P") != handle {
		t.Error("expected registered handle for P")
	}
	if reg.Get("pH") != nil {
		t.Error("expected nil handle for unregistered key")
	}
}
