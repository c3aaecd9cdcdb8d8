package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"vidforge/internal/renderspec"
)

var commandContext = exec.CommandContext

// EncodeParams carries the container/codec settings applied to every render.
type EncodeParams struct {
	VideoCodec   string
	AudioCodec   string
	PixelFormat  string
	VideoBitrate string
	AudioBitrate string
}

// Client defines the media-encoder behaviour the strategies need.
type Client interface {
	// Render rasterizes a RenderSpec's filter graphs into the output file.
	Render(ctx context.Context, spec renderspec.Spec, enc EncodeParams, outputPath string) error
	// MuxFrames assembles an image sequence (printf-style pattern) into a
	// video container, padding with silence so players get an audio track.
	MuxFrames(ctx context.Context, framePattern string, frameRate, sampleRate int, enc EncodeParams, outputPath string) error
	// TestClip writes a short fixed test-pattern clip.
	TestClip(ctx context.Context, seconds, width, height int, enc EncodeParams, outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Render implements Client using two lavfi inputs (procedural video source
// and synthetic audio source) plus the spec's filter chains.
func (c *CLI) Render(ctx context.Context, spec renderspec.Spec, enc EncodeParams, outputPath string) error {
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}
	if spec.VideoSource == "" || spec.AudioSource == "" {
		return errors.New("render spec is missing graph sources")
	}

	args := []string{
		"-y",
		"-f", "lavfi", "-i", spec.VideoSource,
		"-f", "lavfi", "-i", spec.AudioSource,
		"-vf", spec.VideoFilters,
	}
	if spec.AudioFilters != "" {
		args = append(args, "-af", spec.AudioFilters)
	}
	args = append(args, "-t", strconv.Itoa(spec.DurationSeconds))
	args = append(args, codecArgs(enc)...)
	args = append(args, outputPath)

	return c.run(ctx, "render", args)
}

// MuxFrames implements Client for locally synthesized frame sequences.
func (c *CLI) MuxFrames(ctx context.Context, framePattern string, frameRate, sampleRate int, enc EncodeParams, outputPath string) error {
	if strings.TrimSpace(framePattern) == "" {
		return errors.New("frame pattern required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}
	if frameRate <= 0 {
		frameRate = 25
	}
	if sampleRate <= 0 {
		sampleRate = 44100
	}

	args := []string{
		"-y",
		"-framerate", strconv.Itoa(frameRate),
		"-i", framePattern,
		"-f", "lavfi", "-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", sampleRate),
		"-shortest",
	}
	args = append(args, codecArgs(enc)...)
	args = append(args, outputPath)

	return c.run(ctx, "mux frames", args)
}

// TestClip implements Client; used by the terminal fallback when the encoder
// is still reachable.
func (c *CLI) TestClip(ctx context.Context, seconds, width, height int, enc EncodeParams, outputPath string) error {
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}
	if seconds <= 0 {
		seconds = 2
	}

	args := []string{
		"-y",
		"-f", "lavfi", "-i", fmt.Sprintf("testsrc=size=%dx%d:rate=25", width, height),
		"-t", strconv.Itoa(seconds),
	}
	args = append(args, videoCodecArgs(enc)...)
	args = append(args, outputPath)

	return c.run(ctx, "test clip", args)
}

// run executes ffmpeg, capturing stderr for diagnostics. A non-zero exit is
// reported with the tail of the stderr stream so degraded runs can be
// diagnosed from logs alone.
func (c *CLI) run(ctx context.Context, operation string, args []string) error {
	cmd := commandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg %s: %w: %s", operation, err, stderrTail(stderr.String()))
	}
	return nil
}

func codecArgs(enc EncodeParams) []string {
	args := videoCodecArgs(enc)
	if enc.AudioCodec != "" {
		args = append(args, "-c:a", enc.AudioCodec)
	}
	if enc.AudioBitrate != "" {
		args = append(args, "-b:a", enc.AudioBitrate)
	}
	return args
}

func videoCodecArgs(enc EncodeParams) []string {
	var args []string
	if enc.VideoCodec != "" {
		args = append(args, "-c:v", enc.VideoCodec)
	}
	if enc.PixelFormat != "" {
		args = append(args, "-pix_fmt", enc.PixelFormat)
	}
	if enc.VideoBitrate != "" {
		args = append(args, "-b:v", enc.VideoBitrate)
	}
	return args
}

// stderrTail keeps error strings bounded; ffmpeg prints its banner and
// progress before the line that matters.
func stderrTail(output string) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "no stderr output"
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.TrimSpace(strings.Join(lines, " | "))
}

var _ Client = (*CLI)(nil)
