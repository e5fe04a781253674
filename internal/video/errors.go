package video

import "fmt"

// InvalidInputError reports unusable pipeline input: a missing source image
// or empty story text. Fatal, no fallback applies.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// ConfigError reports a provider whose precondition check failed (missing
// credential or configuration). Raised before any network call; the
// orchestrator treats it like any other failed attempt.
type ConfigError struct {
	Provider string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("video provider %s not configured: %s", e.Provider, e.Reason)
}

// RemoteError reports a network or API failure from a remote provider
type RemoteError struct {
	Provider string
	Err      error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("video provider %s failed: %v", e.Provider, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a remote response that carried no usable
// video payload
type MalformedResponseError struct {
	Provider string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("video provider %s returned malformed response: %s", e.Provider, e.Reason)
}

// CompositionError reports a local video/audio muxing failure. There is no
// fallback beyond local compositing, so it is fatal.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("local video composition failed: %v", e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

// FatalError terminates orchestration, carrying the last underlying cause
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("all video generation methods failed, last error: %v", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
