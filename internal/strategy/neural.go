package strategy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vidforge/internal/config"
	"vidforge/internal/fileutil"
	"vidforge/internal/media"
	"vidforge/internal/services/ffmpeg"
	"vidforge/internal/services/neural"
)

// NeuralImageThenMotion is the richest strategy: synthesize a still image
// from the prompt, expand it into motion frames with the neural helper, then
// assemble the frames into the output container.
type NeuralImageThenMotion struct {
	cfg     *config.Config
	client  neural.Client
	encoder ffmpeg.Client
	timeout time.Duration
}

// NewNeuralImageThenMotion builds the strategy with its own deadline taken
// from tool configuration.
func NewNeuralImageThenMotion(cfg *config.Config, client neural.Client, encoder ffmpeg.Client) *NeuralImageThenMotion {
	return &NeuralImageThenMotion{
		cfg:     cfg,
		client:  client,
		encoder: encoder,
		timeout: time.Duration(cfg.Tools.NeuralTimeoutSeconds) * time.Second,
	}
}

// Name implements Strategy.
func (s *NeuralImageThenMotion) Name() string { return NameNeuralImageThenMotion }

// Attempt implements Strategy. The still image path is recorded on the
// Execution as soon as the still exists, so later strategies can reuse it
// even when the motion half fails here.
func (s *NeuralImageThenMotion) Attempt(ctx context.Context, ex *Execution) Outcome {
	if !ex.Caps.HasNeuralStack {
		return Unavailable("neural helper not detected")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stillPath := filepath.Join(ex.WorkDir, "still.png")
	if err := s.client.Still(ctx, ex.Request.Prompt, ex.Request.Width, ex.Request.Height, stillPath); err != nil {
		return Failed("still synthesis failed", err)
	}
	if !fileutil.NonEmptyFile(stillPath) {
		return Failed("still synthesis produced no image", fmt.Errorf("empty still at %s", stillPath))
	}
	ex.StillImagePath = stillPath

	frameDir := filepath.Join(ex.WorkDir, "motion")
	if err := os.MkdirAll(frameDir, 0o755); err != nil {
		return Failed("frame directory unavailable", err)
	}
	frameCount := ex.Request.DurationSeconds * s.cfg.Video.FrameRate
	framePattern, err := s.client.Motion(ctx, stillPath, frameCount, frameDir)
	if err != nil {
		return Failed("motion expansion failed", err)
	}

	outputPath, size, err := s.assemble(ctx, ex, framePattern, frameDir)
	if err != nil {
		return Failed("frame assembly failed", err)
	}
	return Success(outputPath, size)
}

// assemble muxes the motion frames with the encoder when one is present, and
// falls back to the built-in container writer when it is not.
func (s *NeuralImageThenMotion) assemble(ctx context.Context, ex *Execution, framePattern, frameDir string) (string, int64, error) {
	if ex.Caps.HasMediaEncoder {
		outputPath := ex.Request.OutputPath
		err := s.encoder.MuxFrames(ctx, framePattern, s.cfg.Video.FrameRate, s.cfg.Audio.SampleRate, encodeParams(s.cfg), outputPath)
		if err != nil {
			return "", 0, err
		}
		return outputPath, fileutil.FileSize(outputPath), nil
	}

	outputPath := containerFallbackPath(ex.Request.OutputPath)
	size, err := media.FramesToAVI(frameDir, outputPath, ex.Request.Width, ex.Request.Height, s.cfg.Video.FrameRate)
	if err != nil {
		return "", 0, err
	}
	return outputPath, size, nil
}

// containerFallbackPath swaps the requested extension for the container the
// built-in writer produces.
func containerFallbackPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return outputPath[:len(outputPath)-len(ext)] + ".avi"
}
