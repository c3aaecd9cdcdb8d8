package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"vidforge/internal/config"
	"vidforge/internal/deps"
	"vidforge/internal/fileutil"
	"vidforge/internal/history"
	"vidforge/internal/logging"
	"vidforge/internal/metadata"
	"vidforge/internal/renderspec"
	"vidforge/internal/services"
	"vidforge/internal/strategy"
	"vidforge/internal/theme"
)

// Request is one user-facing generation request before normalization.
type Request struct {
	Prompt          string
	OutputPath      string
	Width           int
	Height          int
	DurationSeconds int
	Short           bool
	Audio           bool
}

// Result summarizes a completed generation for callers and command output.
type Result struct {
	RequestID    uuid.UUID
	ArtifactPath string
	MetadataPath string
	StrategyUsed string
	Fallback     bool
	Repaired     bool
	BytesWritten int64
	Profile      theme.Profile
}

// Runner abstracts the strategy chain for tests.
type Runner interface {
	Run(ctx context.Context, ex *strategy.Execution) (strategy.Result, error)
}

// Recorder abstracts the history ledger for tests.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Prober returns the capability set for this run.
type Prober func(ctx context.Context) deps.CapabilitySet

// Generator orchestrates one prompt-to-artifact pass: classify, build the
// render spec, probe capabilities, drive the strategy chain, then persist the
// sidecar and ledger entry.
type Generator struct {
	cfg      *config.Config
	logger   *slog.Logger
	chain    Runner
	recorder Recorder
	probe    Prober
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithChain overrides the strategy chain.
func WithChain(chain Runner) Option {
	return func(g *Generator) {
		if chain != nil {
			g.chain = chain
		}
	}
}

// WithRecorder attaches a history ledger. Without one, generations are not
// recorded.
func WithRecorder(recorder Recorder) Option {
	return func(g *Generator) { g.recorder = recorder }
}

// WithProber overrides capability probing.
func WithProber(probe Prober) Option {
	return func(g *Generator) {
		if probe != nil {
			g.probe = probe
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator builds a Generator with the default chain and prober.
func NewGenerator(cfg *config.Config, chain Runner, logger *slog.Logger, opts ...Option) *Generator {
	gen := &Generator{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "workflow"),
		chain:  chain,
		now:    time.Now,
	}
	gen.probe = func(ctx context.Context) deps.CapabilitySet {
		return deps.Probe(ctx, deps.ProbeOptions{
			FFmpegBinary: cfg.Tools.FFmpegBinary,
			NeuralBinary: cfg.Tools.NeuralBinary,
			Timeout:      time.Duration(cfg.Tools.ProbeTimeoutSeconds) * time.Second,
		})
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

// Generate runs the full pipeline for one request.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	req = g.normalize(req)
	if err := validate(req); err != nil {
		return Result{}, err
	}

	// One writer per output target. The lock file sits next to the artifact
	// so contention is visible to the user.
	lock := flock.New(req.OutputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, services.Wrap(services.ErrFilesystemFatal, "workflow", "lock", "acquire output lock", err)
	}
	if !locked {
		return Result{}, services.Wrap(services.ErrValidation, "workflow", "lock",
			fmt.Sprintf("output %s is being generated by another process", req.OutputPath), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	if err := fileutil.EnsureParentDir(req.OutputPath); err != nil {
		return Result{}, services.Wrap(services.ErrFilesystemFatal, "workflow", "prepare", "create output directory", err)
	}

	requestID := uuid.New()
	profile := theme.Classify(req.Prompt)
	spec := renderspec.Build(profile, renderspec.Params{
		Width:           req.Width,
		Height:          req.Height,
		DurationSeconds: req.DurationSeconds,
		FrameRate:       g.cfg.Video.FrameRate,
		SampleRate:      g.cfg.Audio.SampleRate,
		Volume:          g.cfg.Audio.Volume,
		DefaultToneHz:   g.cfg.Audio.DefaultToneHz,
		AudioLayer:      req.Audio,
	})

	caps := g.probe(ctx)
	g.logger.Info("starting generation",
		logging.String(logging.FieldRequestID, requestID.String()),
		logging.String(logging.FieldPrompt, req.Prompt),
		logging.String(logging.FieldOutput, req.OutputPath),
		logging.String("visual_pattern", string(profile.VisualPattern)),
		logging.Bool("media_encoder", caps.HasMediaEncoder),
		logging.Bool("neural_stack", caps.HasNeuralStack),
	)
	if spec.Repaired {
		g.logger.Warn("render graph repaired to default test pattern",
			logging.String(logging.FieldRequestID, requestID.String()))
	}

	workDir, err := os.MkdirTemp("", "vidforge-")
	if err != nil {
		return Result{}, services.Wrap(services.ErrFilesystemFatal, "workflow", "prepare", "create work directory", err)
	}
	defer os.RemoveAll(workDir)

	ex := &strategy.Execution{
		Request: strategy.Request{
			ID:              requestID,
			Prompt:          req.Prompt,
			Width:           req.Width,
			Height:          req.Height,
			DurationSeconds: req.DurationSeconds,
			AudioLayer:      req.Audio,
			OutputPath:      req.OutputPath,
		},
		Spec:    spec,
		Caps:    caps,
		WorkDir: workDir,
	}

	chainResult, err := g.chain.Run(ctx, ex)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		RequestID:    requestID,
		ArtifactPath: chainResult.Outcome.ArtifactPath,
		StrategyUsed: chainResult.StrategyUsed,
		Fallback:     chainResult.Fallback,
		Repaired:     spec.Repaired,
		BytesWritten: chainResult.Outcome.BytesWritten,
		Profile:      profile,
	}

	sidecarPath, err := g.writeSidecar(req, result)
	if err != nil {
		return Result{}, services.Wrap(services.ErrFilesystemFatal, "workflow", "metadata", "write sidecar", err)
	}
	result.MetadataPath = sidecarPath

	g.record(ctx, req, result)

	g.logger.Info("generation complete",
		logging.String(logging.FieldRequestID, requestID.String()),
		logging.String(logging.FieldStrategy, result.StrategyUsed),
		logging.String(logging.FieldOutput, result.ArtifactPath),
		logging.Bool("fallback", result.Fallback),
		logging.Int64("bytes_written", result.BytesWritten),
	)
	return result, nil
}

// normalize fills zero-valued request fields from configuration. A short
// request pins the duration regardless of what was asked for.
func (g *Generator) normalize(req Request) Request {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Width == 0 {
		req.Width = g.cfg.Video.Width
	}
	if req.Height == 0 {
		req.Height = g.cfg.Video.Height
	}
	if req.DurationSeconds == 0 {
		req.DurationSeconds = g.cfg.Video.DurationSeconds
	}
	if req.Short {
		req.DurationSeconds = g.cfg.Video.ShortDurationSeconds
	}
	return req
}

func validate(req Request) error {
	switch {
	case req.Prompt == "":
		return services.Wrap(services.ErrValidation, "workflow", "validate", "prompt is required", nil)
	case strings.TrimSpace(req.OutputPath) == "":
		return services.Wrap(services.ErrValidation, "workflow", "validate", "output path is required", nil)
	case req.Width <= 0 || req.Height <= 0:
		return services.Wrap(services.ErrValidation, "workflow", "validate",
			fmt.Sprintf("geometry %dx%d is not positive", req.Width, req.Height), nil)
	case req.DurationSeconds <= 0:
		return services.Wrap(services.ErrValidation, "workflow", "validate", "duration must be positive", nil)
	}
	return nil
}

func (g *Generator) writeSidecar(req Request, result Result) (string, error) {
	var audioElements []string
	if req.Audio {
		audioElements = result.Profile.AudioElements
	}
	return metadata.Write(result.ArtifactPath, metadata.Record{
		Prompt:          req.Prompt,
		DurationSeconds: req.DurationSeconds,
		Resolution:      metadata.Resolution(req.Width, req.Height),
		AudioEnabled:    req.Audio,
		AudioElements:   audioElements,
		StrategyUsed:    result.StrategyUsed,
		GeneratedAt:     metadata.Timestamp(g.now()),
		FileSizeBytes:   result.BytesWritten,
		IsFallback:      result.Fallback,
		GraphRepaired:   result.Repaired,
	})
}

// record appends to the ledger. The ledger is advisory, so failures are
// logged and swallowed.
func (g *Generator) record(ctx context.Context, req Request, result Result) {
	if g.recorder == nil {
		return
	}
	entry := history.Entry{
		ID:            result.RequestID,
		Prompt:        req.Prompt,
		OutputPath:    result.ArtifactPath,
		Strategy:      result.StrategyUsed,
		Fallback:      result.Fallback,
		FileSizeBytes: result.BytesWritten,
		CreatedAt:     g.now().UTC(),
	}
	if err := g.recorder.Record(ctx, entry); err != nil {
		g.logger.Warn("history record failed",
			logging.String(logging.FieldRequestID, result.RequestID.String()),
			logging.Error(err),
		)
	}
}
