package analyzer

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/verdantworks/soilstory/pkg/types"
)

// Analyzer turns raw photo bytes into a soil analysis. Each property key is
// backed by a pretrained classifier when available and by a deterministic
// formula otherwise, so the result map is always complete.
type Analyzer struct {
	logger zerolog.Logger
	models ModelSource
}

// New creates an analyzer over the given model source
func New(logger zerolog.Logger, models ModelSource) *Analyzer {
	return &Analyzer{
		logger: logger.With().Str("component", "soil-analyzer").Logger(),
		models: models,
	}
}

// Analyze decodes the photo, extracts features and predicts every soil
// property. Returns InvalidImageError when the bytes cannot be decoded;
// a missing or failing classifier never surfaces as an error.
func (a *Analyzer) Analyze(imageBytes []byte) (types.AnalysisResult, error) {
	img, err := DecodeImage(imageBytes)
	if err != nil {
		return nil, err
	}

	features := Extract(img)
	a.logger.Debug().
		Float64("color_feature", features.ColorFeature).
		Float64("gray_spread", features.GraySpread).
		Msg("features extracted")

	result := make(types.AnalysisResult, len(types.PropertyKeys)+1)
	for _, key := range types.PropertyKeys {
		result[key] = round3(a.predict(key, features.ColorFeature))
	}

	moisture := 1.0 - features.GraySpread/128.0
	result["moisture"] = round3(clamp01(moisture))

	return result, nil
}

// predict applies the two-tier policy for one key: classifier if its handle
// is live, formula fallback otherwise. The tiers are independent per key.
func (a *Analyzer) predict(key string, feature float64) float64 {
	model := a.models.Get(key)
	if model == nil {
		return fallbackFormula(feature)
	}

	pred, err := model.Predict(feature)
	if err != nil {
		a.logger.Warn().Err(err).Str("key", key).Msg("prediction failed, using formula fallback")
		return fallbackFormula(feature)
	}
	return pred
}

func fallbackFormula(feature float64) float64 {
	return math.Mod(feature, 10)
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
