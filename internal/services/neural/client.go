package neural

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// FramePattern is the printf-style name the helper uses for motion frames
// inside its output directory.
const FramePattern = "frame_%05d.png"

// Client defines the neural inference behaviour strategy one depends on.
// Both calls may be unavailable (helper absent) or fail at run time (no
// accelerator); callers must treat either as recoverable.
type Client interface {
	// Still synthesizes a still image for the prompt at the target geometry.
	Still(ctx context.Context, prompt string, width, height int, outputPath string) error
	// Motion animates a still image into frameCount motion frames, returning
	// the full frame pattern inside outputDir.
	Motion(ctx context.Context, stillPath string, frameCount int, outputDir string) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default helper binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the inference helper binary.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "svd-cli"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Still implements Client.
func (c *CLI) Still(ctx context.Context, prompt string, width, height int, outputPath string) error {
	if strings.TrimSpace(prompt) == "" {
		return errors.New("prompt required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}

	args := []string{
		"image",
		"--prompt", prompt,
		"--width", strconv.Itoa(width),
		"--height", strconv.Itoa(height),
		"--output", outputPath,
	}
	return c.run(ctx, "still image", args)
}

// Motion implements Client.
func (c *CLI) Motion(ctx context.Context, stillPath string, frameCount int, outputDir string) (string, error) {
	if strings.TrimSpace(stillPath) == "" {
		return "", errors.New("still image path required")
	}
	if frameCount <= 0 {
		return "", fmt.Errorf("frame count must be positive, got %d", frameCount)
	}
	if strings.TrimSpace(outputDir) == "" {
		return "", errors.New("output directory required")
	}

	args := []string{
		"motion",
		"--image", stillPath,
		"--frames", strconv.Itoa(frameCount),
		"--output-dir", outputDir,
	}
	if err := c.run(ctx, "motion frames", args); err != nil {
		return "", err
	}
	return filepath.Join(outputDir, FramePattern), nil
}

func (c *CLI) run(ctx context.Context, operation string, args []string) error {
	cmd := commandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "no stderr output"
		}
		return fmt.Errorf("neural %s: %w: %s", operation, err, detail)
	}
	return nil
}

var _ Client = (*CLI)(nil)
