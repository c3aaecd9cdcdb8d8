package strategy

import (
	"context"
	"time"

	"vidforge/internal/config"
	"vidforge/internal/fileutil"
	"vidforge/internal/services/ffmpeg"
)

// ProceduralFilterGraphRender rasterizes the request's render spec with the
// external encoder. No neural tooling is involved, so it degrades gracefully
// to prompt-themed procedural visuals.
type ProceduralFilterGraphRender struct {
	cfg     *config.Config
	encoder ffmpeg.Client
	timeout time.Duration
}

// NewProceduralFilterGraphRender builds the strategy.
func NewProceduralFilterGraphRender(cfg *config.Config, encoder ffmpeg.Client) *ProceduralFilterGraphRender {
	return &ProceduralFilterGraphRender{
		cfg:     cfg,
		encoder: encoder,
		timeout: time.Duration(cfg.Tools.RenderTimeoutSeconds) * time.Second,
	}
}

// Name implements Strategy.
func (s *ProceduralFilterGraphRender) Name() string { return NameProceduralFilterGraph }

// Attempt implements Strategy.
func (s *ProceduralFilterGraphRender) Attempt(ctx context.Context, ex *Execution) Outcome {
	if !ex.Caps.HasMediaEncoder {
		return Unavailable("media encoder not detected")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	outputPath := ex.Request.OutputPath
	if err := s.encoder.Render(ctx, ex.Spec, encodeParams(s.cfg), outputPath); err != nil {
		return Failed("filter graph render failed", err)
	}
	if !fileutil.NonEmptyFile(outputPath) {
		return Failed("render produced an empty file", nil)
	}
	return Success(outputPath, fileutil.FileSize(outputPath))
}
