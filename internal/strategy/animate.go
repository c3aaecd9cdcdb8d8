package strategy

import (
	"context"
	"path/filepath"
	"time"

	"vidforge/internal/config"
	"vidforge/internal/fileutil"
	"vidforge/internal/media"
	"vidforge/internal/services/ffmpeg"
)

// ImageAnimationFallback animates an existing still image with a sinusoidal
// zoom warp. It only runs when an earlier strategy left a still behind, which
// makes it the salvage path for a half-successful neural attempt.
type ImageAnimationFallback struct {
	cfg     *config.Config
	encoder ffmpeg.Client
	timeout time.Duration
}

// NewImageAnimationFallback builds the strategy.
func NewImageAnimationFallback(cfg *config.Config, encoder ffmpeg.Client) *ImageAnimationFallback {
	return &ImageAnimationFallback{
		cfg:     cfg,
		encoder: encoder,
		timeout: time.Duration(cfg.Tools.RenderTimeoutSeconds) * time.Second,
	}
}

// Name implements Strategy.
func (s *ImageAnimationFallback) Name() string { return NameImageAnimationFallback }

// Attempt implements Strategy.
func (s *ImageAnimationFallback) Attempt(ctx context.Context, ex *Execution) Outcome {
	if ex.StillImagePath == "" {
		return Unavailable("no still image available to animate")
	}

	still, err := media.LoadStill(ex.StillImagePath)
	if err != nil {
		return Failed("still image unreadable", err)
	}

	frameCount := ex.Request.DurationSeconds * s.cfg.Video.FrameRate

	if ex.Caps.HasMediaEncoder {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		frameDir := filepath.Join(ex.WorkDir, "zoom")
		pattern, err := media.WriteZoomSequence(still, frameDir, ex.Request.Width, ex.Request.Height, frameCount, s.cfg.Video.FrameRate, media.DefaultWarp())
		if err != nil {
			return Failed("zoom frame synthesis failed", err)
		}
		outputPath := ex.Request.OutputPath
		if err := s.encoder.MuxFrames(ctx, pattern, s.cfg.Video.FrameRate, s.cfg.Audio.SampleRate, encodeParams(s.cfg), outputPath); err != nil {
			return Failed("zoom frame mux failed", err)
		}
		return Success(outputPath, fileutil.FileSize(outputPath))
	}

	outputPath := containerFallbackPath(ex.Request.OutputPath)
	size, err := media.WriteZoomAVI(still, outputPath, ex.Request.Width, ex.Request.Height, frameCount, s.cfg.Video.FrameRate, media.DefaultWarp())
	if err != nil {
		return Failed("zoom container write failed", err)
	}
	return Success(outputPath, size)
}
