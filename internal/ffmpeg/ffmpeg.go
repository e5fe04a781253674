// Package ffmpeg shells out to the system ffmpeg binary for local video
// composition.
package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Runner executes an ffmpeg invocation. The concrete Executor shells out;
// tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// Executor runs the real ffmpeg binary
type Executor struct {
	logger     zerolog.Logger
	ffmpegPath string
	threads    int
}

// New creates an executor, resolving ffmpeg from PATH
func New(logger zerolog.Logger, threads int) (*Executor, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	return &Executor{
		logger:     logger.With().Str("component", "ffmpeg").Logger(),
		ffmpegPath: ffmpegPath,
		threads:    threads,
	}, nil
}

// Run executes ffmpeg with the given arguments
func (e *Executor) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no arguments provided")
	}

	baseArgs := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if e.threads > 0 {
		baseArgs = append(baseArgs, "-threads", fmt.Sprintf("%d", e.threads))
	}
	fullArgs := append(baseArgs, args...)

	e.logger.Debug().Strs("args", fullArgs).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, e.ffmpegPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg execution failed: %w: %s", err, tail(string(output), 512))
	}

	e.logger.Debug().Msg("ffmpeg execution completed")
	return nil
}

// tail returns the last n bytes of s, trimmed
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
