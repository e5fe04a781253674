package analyzer

import "fmt"

// InvalidImageError reports image bytes that could not be decoded.
// It is terminal for the whole pipeline; nothing downstream runs without
// a decoded pixel grid.
type InvalidImageError struct {
	Cause error
}

func (e *InvalidImageError) Error() string {
	if e.Cause == nil {
		return "invalid image data"
	}
	return fmt.Sprintf("invalid image data: %v", e.Cause)
}

func (e *InvalidImageError) Unwrap() error {
	return e.Cause
}
