package analyzer

import (
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

// onnxClassifier wraps a single-feature ONNX regression model. Every
// deployed soil classifier takes a [1,1] float32 input and emits a [1,1]
// float32 prediction.
type onnxClassifier struct {
	path    string
	session *ort.DynamicAdvancedSession
}

func loadONNXClassifier(path string) (*onnxClassifier, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model file not found: %s", path)
	}

	sess, err := ort.NewDynamicAdvancedSession(
		path,
		[]string{"input"},
		[]string{"output"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session for %s: %w", path, err)
	}

	return &onnxClassifier{path: path, session: sess}, nil
}

// Predict runs inference on a single scalar feature
func (c *onnxClassifier) Predict(feature float64) (float64, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(1, 1), []float32{float32(feature)})
	if err != nil {
		return 0, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return 0, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	inputs := []ort.ArbitraryTensor{inputTensor}
	outputs := []ort.ArbitraryTensor{outputTensor}
	if err := c.session.Run(inputs, outputs); err != nil {
		return 0, fmt.Errorf("inference failed for %s: %w", c.path, err)
	}

	data := outputTensor.GetData()
	if len(data) == 0 {
		return 0, fmt.Errorf("empty prediction tensor from %s", c.path)
	}

	return float64(data[0]), nil
}

func (c *onnxClassifier) Close() error {
	if c.session != nil {
		return c.session.Destroy()
	}
	return nil
}
