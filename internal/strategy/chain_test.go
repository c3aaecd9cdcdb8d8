package strategy

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"vidforge/internal/config"
	"vidforge/internal/deps"
	"vidforge/internal/logging"
	"vidforge/internal/renderspec"
	"vidforge/internal/services"
	"vidforge/internal/services/ffmpeg"
)

type scriptedStrategy struct {
	name    string
	outcome Outcome
	calls   int
}

func (s *scriptedStrategy) Name() string { return s.name }

func (s *scriptedStrategy) Attempt(context.Context, *Execution) Outcome {
	s.calls++
	return s.outcome
}

type fakeEncoder struct {
	renderErr error
	muxErr    error
	clipErr   error
	lastOp    string
}

func (f *fakeEncoder) Render(_ context.Context, _ renderspec.Spec, _ ffmpeg.EncodeParams, outputPath string) error {
	f.lastOp = "render"
	if f.renderErr != nil {
		return f.renderErr
	}
	return os.WriteFile(outputPath, []byte("rendered"), 0o644)
}

func (f *fakeEncoder) MuxFrames(_ context.Context, _ string, _, _ int, _ ffmpeg.EncodeParams, outputPath string) error {
	f.lastOp = "mux"
	if f.muxErr != nil {
		return f.muxErr
	}
	return os.WriteFile(outputPath, []byte("muxed"), 0o644)
}

func (f *fakeEncoder) TestClip(_ context.Context, _, _, _ int, _ ffmpeg.EncodeParams, outputPath string) error {
	f.lastOp = "clip"
	if f.clipErr != nil {
		return f.clipErr
	}
	return os.WriteFile(outputPath, []byte("clip"), 0o644)
}

type fakeNeural struct {
	stillErr  error
	motionErr error
}

func (f *fakeNeural) Still(_ context.Context, _ string, _, _ int, outputPath string) error {
	if f.stillErr != nil {
		return f.stillErr
	}
	return writeTestPNG(outputPath, 8, 8)
}

func (f *fakeNeural) Motion(_ context.Context, _ string, frameCount int, outputDir string) (string, error) {
	if f.motionErr != nil {
		return "", f.motionErr
	}
	for i := 0; i < frameCount; i++ {
		name := filepath.Join(outputDir, "frame.jpg")
		if err := os.WriteFile(name, []byte("jpeg"), 0o644); err != nil {
			return "", err
		}
	}
	return filepath.Join(outputDir, "frame_%05d.png"), nil
}

func writeTestPNG(path string, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

func defaultConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func testExecution(t *testing.T) *Execution {
	t.Helper()
	dir := t.TempDir()
	return &Execution{
		Request: Request{
			ID:              uuid.New(),
			Prompt:          "rainforest meditation",
			Width:           64,
			Height:          36,
			DurationSeconds: 1,
			AudioLayer:      true,
			OutputPath:      filepath.Join(dir, "out.mp4"),
		},
		Spec:    renderspec.Spec{VideoSource: "testsrc", AudioSource: "sine", VideoFilters: "scale=64:36", DurationSeconds: 1},
		WorkDir: filepath.Join(dir, "work"),
	}
}

func TestChainReturnsFirstSuccess(t *testing.T) {
	first := &scriptedStrategy{name: NameNeuralImageThenMotion, outcome: Success("/tmp/a.mp4", 10)}
	second := &scriptedStrategy{name: NameProceduralFilterGraph, outcome: Success("/tmp/b.mp4", 20)}
	chain := NewChain(logging.NewNop(), first, second)

	result, err := chain.Run(context.Background(), testExecution(t))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.StrategyUsed != NameNeuralImageThenMotion {
		t.Fatalf("StrategyUsed = %q, want %q", result.StrategyUsed, NameNeuralImageThenMotion)
	}
	if result.Fallback {
		t.Fatal("primary strategy success must not be marked as fallback")
	}
	if second.calls != 0 {
		t.Fatalf("second strategy attempted %d times after first succeeded", second.calls)
	}
}

func TestChainAdvancesPastUnavailableAndFailed(t *testing.T) {
	skipped := &scriptedStrategy{name: NameNeuralImageThenMotion, outcome: Unavailable("no helper")}
	failed := &scriptedStrategy{name: NameImageAnimationFallback, outcome: Failed("boom", errors.New("boom"))}
	winner := &scriptedStrategy{name: NameProceduralFilterGraph, outcome: Success("/tmp/c.mp4", 30)}
	chain := NewChain(logging.NewNop(), skipped, failed, winner)

	result, err := chain.Run(context.Background(), testExecution(t))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.StrategyUsed != NameProceduralFilterGraph {
		t.Fatalf("StrategyUsed = %q, want %q", result.StrategyUsed, NameProceduralFilterGraph)
	}
	if !result.Fallback {
		t.Fatal("non-primary strategy success must be marked as fallback")
	}
	if skipped.calls != 1 || failed.calls != 1 {
		t.Fatalf("attempt counts = %d, %d, want 1, 1", skipped.calls, failed.calls)
	}
}

func TestChainStopsOnFatalFailure(t *testing.T) {
	fatal := &scriptedStrategy{
		name:    NameMinimalPlaceholder,
		outcome: Failed("disk gone", services.Wrap(services.ErrFilesystemFatal, "strategy", "placeholder", "target unwritable", errors.New("read-only"))),
	}
	unreached := &scriptedStrategy{name: NameProceduralFilterGraph, outcome: Success("/tmp/d.mp4", 40)}
	chain := NewChain(logging.NewNop(), fatal, unreached)

	_, err := chain.Run(context.Background(), testExecution(t))
	if !errors.Is(err, services.ErrFilesystemFatal) {
		t.Fatalf("Run() error = %v, want ErrFilesystemFatal", err)
	}
	if unreached.calls != 0 {
		t.Fatal("chain must not advance past a fatal failure")
	}
}

func TestNeuralUnavailableWithoutStack(t *testing.T) {
	strat := NewNeuralImageThenMotion(defaultConfig(), &fakeNeural{}, &fakeEncoder{})
	ex := testExecution(t)
	ex.Caps = deps.CapabilitySet{HasNeuralStack: false}

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusUnavailable {
		t.Fatalf("Status = %v, want unavailable", outcome.Status)
	}
}

func TestNeuralRecordsStillEvenWhenMotionFails(t *testing.T) {
	strat := NewNeuralImageThenMotion(defaultConfig(), &fakeNeural{motionErr: errors.New("helper crashed")}, &fakeEncoder{})
	ex := testExecution(t)
	ex.Caps = deps.CapabilitySet{HasNeuralStack: true, HasMediaEncoder: true}
	if err := os.MkdirAll(ex.WorkDir, 0o755); err != nil {
		t.Fatal(err)
	}

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusFailed {
		t.Fatalf("Status = %v, want failed", outcome.Status)
	}
	if ex.StillImagePath == "" {
		t.Fatal("still path must survive a failed motion stage for later strategies")
	}
	if _, err := os.Stat(ex.StillImagePath); err != nil {
		t.Fatalf("recorded still missing: %v", err)
	}
}

func TestNeuralMuxesWithEncoder(t *testing.T) {
	enc := &fakeEncoder{}
	strat := NewNeuralImageThenMotion(defaultConfig(), &fakeNeural{}, enc)
	ex := testExecution(t)
	ex.Caps = deps.CapabilitySet{HasNeuralStack: true, HasMediaEncoder: true}
	if err := os.MkdirAll(ex.WorkDir, 0o755); err != nil {
		t.Fatal(err)
	}

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusSuccess {
		t.Fatalf("Status = %v (%s: %v), want success", outcome.Status, outcome.Reason, outcome.Err)
	}
	if enc.lastOp != "mux" {
		t.Fatalf("encoder operation = %q, want mux", enc.lastOp)
	}
	if outcome.ArtifactPath != ex.Request.OutputPath {
		t.Fatalf("ArtifactPath = %q, want %q", outcome.ArtifactPath, ex.Request.OutputPath)
	}
}

func TestAnimationRequiresStill(t *testing.T) {
	strat := NewImageAnimationFallback(defaultConfig(), &fakeEncoder{})
	ex := testExecution(t)

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusUnavailable {
		t.Fatalf("Status = %v, want unavailable", outcome.Status)
	}
}

func TestAnimationWritesContainerWithoutEncoder(t *testing.T) {
	strat := NewImageAnimationFallback(defaultConfig(), &fakeEncoder{})
	ex := testExecution(t)
	if err := os.MkdirAll(ex.WorkDir, 0o755); err != nil {
		t.Fatal(err)
	}
	ex.StillImagePath = filepath.Join(ex.WorkDir, "still.png")
	if err := writeTestPNG(ex.StillImagePath, 32, 18); err != nil {
		t.Fatal(err)
	}

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusSuccess {
		t.Fatalf("Status = %v (%s: %v), want success", outcome.Status, outcome.Reason, outcome.Err)
	}
	if filepath.Ext(outcome.ArtifactPath) != ".avi" {
		t.Fatalf("ArtifactPath = %q, want .avi container fallback", outcome.ArtifactPath)
	}
	if outcome.BytesWritten <= 0 {
		t.Fatalf("BytesWritten = %d, want > 0", outcome.BytesWritten)
	}
}

func TestProceduralUnavailableWithoutEncoder(t *testing.T) {
	strat := NewProceduralFilterGraphRender(defaultConfig(), &fakeEncoder{})
	ex := testExecution(t)

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusUnavailable {
		t.Fatalf("Status = %v, want unavailable", outcome.Status)
	}
}

func TestProceduralRendersSpec(t *testing.T) {
	enc := &fakeEncoder{}
	strat := NewProceduralFilterGraphRender(defaultConfig(), enc)
	ex := testExecution(t)
	ex.Caps = deps.CapabilitySet{HasMediaEncoder: true}

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusSuccess {
		t.Fatalf("Status = %v (%s: %v), want success", outcome.Status, outcome.Reason, outcome.Err)
	}
	if enc.lastOp != "render" {
		t.Fatalf("encoder operation = %q, want render", enc.lastOp)
	}
}

func TestPlaceholderWritesBytesWithoutEncoder(t *testing.T) {
	strat := NewMinimalPlaceholderArtifact(defaultConfig(), &fakeEncoder{})
	ex := testExecution(t)

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusSuccess {
		t.Fatalf("Status = %v (%s: %v), want success", outcome.Status, outcome.Reason, outcome.Err)
	}
	if outcome.BytesWritten <= 0 {
		t.Fatalf("BytesWritten = %d, want > 0", outcome.BytesWritten)
	}
}

func TestPlaceholderFallsBackWhenEncoderFails(t *testing.T) {
	enc := &fakeEncoder{clipErr: errors.New("encoder exploded")}
	strat := NewMinimalPlaceholderArtifact(defaultConfig(), enc)
	ex := testExecution(t)
	ex.Caps = deps.CapabilitySet{HasMediaEncoder: true}

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusSuccess {
		t.Fatalf("Status = %v (%s: %v), want success via byte-level writer", outcome.Status, outcome.Reason, outcome.Err)
	}
}

func TestPlaceholderFatalOnUnwritableTarget(t *testing.T) {
	strat := NewMinimalPlaceholderArtifact(defaultConfig(), &fakeEncoder{})
	ex := testExecution(t)
	ex.Request.OutputPath = filepath.Join(ex.Request.OutputPath, "nested", "out.mp4")

	outcome := strat.Attempt(context.Background(), ex)
	if outcome.Status != StatusFailed {
		t.Fatalf("Status = %v, want failed", outcome.Status)
	}
	if !services.Fatal(outcome.Err) {
		t.Fatalf("error %v must classify as fatal", outcome.Err)
	}
}

func TestContainerFallbackPath(t *testing.T) {
	got := containerFallbackPath("/videos/clip.mp4")
	if got != "/videos/clip.avi" {
		t.Fatalf("containerFallbackPath = %q, want /videos/clip.avi", got)
	}
}
