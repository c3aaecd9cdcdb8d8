package strategy

import (
	"context"
	"log/slog"

	"vidforge/internal/config"
	"vidforge/internal/deps"
	"vidforge/internal/logging"
	"vidforge/internal/renderspec"
	"vidforge/internal/services"
	"vidforge/internal/services/ffmpeg"
	"vidforge/internal/services/neural"
)

// Execution is the mutable state shared by consecutive attempts for one
// request. Strategies communicate forward through it: notably, the still
// image synthesized by the neural strategy's first half stays available to
// the animation fallback even when the neural strategy as a whole failed.
type Execution struct {
	Request Request
	Spec    renderspec.Spec
	Caps    deps.CapabilitySet

	// WorkDir is a per-request scratch directory for stills and frames.
	WorkDir string
	// StillImagePath is set as soon as a still image exists on disk.
	StillImagePath string
}

// Strategy is one synthesis approach the chain can attempt.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, ex *Execution) Outcome
}

// Result is the chain's terminal report.
type Result struct {
	Outcome      Outcome
	StrategyUsed string
	// Fallback marks any success that did not come from the richest
	// strategy, so downstream consumers can tell best-effort output from
	// degraded output.
	Fallback bool
}

// Chain attempts strategies strictly in order, advancing past unavailable
// and failed attempts. It is cost-ordered by richness: expensive high-quality
// paths first, certain-but-minimal paths last.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewChain assembles a chain over the given strategies. Order is preserved.
func NewChain(logger *slog.Logger, strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     logging.NewComponentLogger(logger, "strategy-chain"),
	}
}

// DefaultChain wires the four standard strategies in their fixed priority
// order.
func DefaultChain(cfg *config.Config, neuralClient neural.Client, encoder ffmpeg.Client, logger *slog.Logger) *Chain {
	return NewChain(logger,
		NewNeuralImageThenMotion(cfg, neuralClient, encoder),
		NewImageAnimationFallback(cfg, encoder),
		NewProceduralFilterGraphRender(cfg, encoder),
		NewMinimalPlaceholderArtifact(cfg, encoder),
	)
}

// Run drives the chain to a terminal result. It returns an error only for
// fatal conditions (unwritable output target); every other failure advances
// to the next strategy, so callers always get either a Result or a fatal
// error, never silence.
func (c *Chain) Run(ctx context.Context, ex *Execution) (Result, error) {
	for _, strat := range c.strategies {
		outcome := strat.Attempt(ctx, ex)
		switch outcome.Status {
		case StatusSuccess:
			c.logger.Info("strategy succeeded",
				logging.String(logging.FieldStrategy, strat.Name()),
				logging.String(logging.FieldOutput, outcome.ArtifactPath),
				logging.Int64("bytes_written", outcome.BytesWritten),
			)
			return Result{
				Outcome:      outcome,
				StrategyUsed: strat.Name(),
				Fallback:     strat.Name() != NameNeuralImageThenMotion,
			}, nil
		case StatusUnavailable:
			c.logger.Debug("strategy unavailable",
				logging.String(logging.FieldStrategy, strat.Name()),
				logging.String(logging.FieldReason, outcome.Reason),
			)
		case StatusFailed:
			if services.Fatal(outcome.Err) {
				return Result{}, outcome.Err
			}
			c.logger.Warn("strategy failed, advancing",
				logging.String(logging.FieldStrategy, strat.Name()),
				logging.String(logging.FieldReason, outcome.Reason),
				logging.Error(outcome.Err),
			)
		}
	}
	// Unreachable with the default chain: the placeholder strategy either
	// succeeds or errors fatally.
	return Result{}, services.Wrap(services.ErrStrategyFailed, "chain", "run", "all strategies exhausted", nil)
}

func encodeParams(cfg *config.Config) ffmpeg.EncodeParams {
	return ffmpeg.EncodeParams{
		VideoCodec:   cfg.Video.VideoCodec,
		AudioCodec:   cfg.Video.AudioCodec,
		PixelFormat:  cfg.Video.PixelFormat,
		VideoBitrate: cfg.Video.VideoBitrate,
		AudioBitrate: cfg.Video.AudioBitrate,
	}
}
