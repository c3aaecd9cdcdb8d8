package strategy

import (
	"context"
	"time"

	"vidforge/internal/config"
	"vidforge/internal/fileutil"
	"vidforge/internal/media"
	"vidforge/internal/services"
	"vidforge/internal/services/ffmpeg"
)

// MinimalPlaceholderArtifact is the terminal strategy. It always produces a
// file: a short encoder test clip when the encoder is reachable, otherwise a
// hand-assembled minimal container. A write failure here means the output
// target itself is unusable, which the chain treats as fatal.
type MinimalPlaceholderArtifact struct {
	cfg     *config.Config
	encoder ffmpeg.Client
	timeout time.Duration
}

// NewMinimalPlaceholderArtifact builds the strategy.
func NewMinimalPlaceholderArtifact(cfg *config.Config, encoder ffmpeg.Client) *MinimalPlaceholderArtifact {
	return &MinimalPlaceholderArtifact{
		cfg:     cfg,
		encoder: encoder,
		timeout: time.Duration(cfg.Tools.RenderTimeoutSeconds) * time.Second,
	}
}

// Name implements Strategy.
func (s *MinimalPlaceholderArtifact) Name() string { return NameMinimalPlaceholder }

// Attempt implements Strategy. Never returns StatusUnavailable.
func (s *MinimalPlaceholderArtifact) Attempt(ctx context.Context, ex *Execution) Outcome {
	outputPath := ex.Request.OutputPath

	if ex.Caps.HasMediaEncoder {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		err := s.encoder.TestClip(ctx, s.cfg.Placeholder.ClipSeconds, ex.Request.Width, ex.Request.Height, encodeParams(s.cfg), outputPath)
		if err == nil && fileutil.NonEmptyFile(outputPath) {
			return Success(outputPath, fileutil.FileSize(outputPath))
		}
		// Fall through to the byte-level writer; an encoder that probes
		// healthy can still fail on an exotic output target.
	}

	size, err := media.WritePlaceholder(outputPath)
	if err != nil {
		return Failed("placeholder write failed",
			services.Wrap(services.ErrFilesystemFatal, "strategy", "placeholder", "output target is not writable", err))
	}
	return Success(outputPath, size)
}
