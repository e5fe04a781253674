package analyzer

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/verdantworks/soilstory/pkg/types"
)

// Classifier is an opaque pretrained predictor mapping a scalar feature to
// a soil-property value
type Classifier interface {
	Predict(feature float64) (float64, error)
}

// ModelSource is the read side of the registry, what the analyzer depends on
type ModelSource interface {
	// Get returns the classifier for a property key, or nil when its
	// backing artifact failed to load. Absence is an expected state.
	Get(key string) Classifier
}

// Registry owns the classifier artifacts. All keys are loaded exactly once,
// at construction; a key whose artifact is missing or unreadable is recorded
// as nil and never retried for the process lifetime. After construction the
// registry is read-only, so concurrent readers need no locking.
type Registry struct {
	logger zerolog.Logger
	models map[string]Classifier
}

// NewRegistry loads every known classifier from modelsDir. One artifact
// failing never aborts the others.
func NewRegistry(logger zerolog.Logger, modelsDir string) *Registry {
	r := &Registry{
		logger: logger.With().Str("component", "model-registry").Logger(),
		models: make(map[string]Classifier, len(types.PropertyKeys)),
	}

	if err := ort.InitializeEnvironment(); err != nil {
		r.logger.Warn().Err(err).Msg("ONNX runtime unavailable, all classifiers disabled")
		for _, key := range types.PropertyKeys {
			r.models[key] = nil
		}
		return r
	}

	for _, key := range types.PropertyKeys {
		path := filepath.Join(modelsDir, fmt.Sprintf("%sclassifier.onnx", key))
		model, err := loadONNXClassifier(path)
		if err != nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("classifier unavailable, formula fallback will be used")
			r.models[key] = nil
			continue
		}
		r.logger.Info().Str("key", key).Str("path", path).Msg("classifier loaded")
		r.models[key] = model
	}

	return r
}

// NewStaticRegistry builds a registry from pre-constructed handles. Used by
// the tests and by composition roots that load models elsewhere.
func NewStaticRegistry(models map[string]Classifier) *Registry {
	copied := make(map[string]Classifier, len(models))
	for k, v := range models {
		copied[k] = v
	}
	return &Registry{models: copied}
}

// Get returns the cached classifier for key, or nil when it is absent
func (r *Registry) Get(key string) Classifier {
	return r.models[key]
}

// Close releases the underlying inference sessions
func (r *Registry) Close() error {
	var firstErr error
	for key, model := range r.models {
		closer, ok := model.(interface{ Close() error })
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing classifier %s: %w", key, err)
		}
	}
	return firstErr
}
