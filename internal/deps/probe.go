package deps

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// CapabilitySet records which optional heavy dependencies answered a version
// query. It is probed once per request and immutable afterwards; environments
// change between runs, so results are never cached across invocations.
type CapabilitySet struct {
	HasMediaEncoder bool
	HasNeuralStack  bool
}

// ProbeOptions names the binaries to query and bounds each query's wall
// clock.
type ProbeOptions struct {
	FFmpegBinary string
	NeuralBinary string
	Timeout      time.Duration
}

// Probe runs cheap, side-effect-free version queries against the optional
// tool binaries. Any error (missing binary, non-zero exit, timeout) is
// reported as capability-absent and never propagated.
func Probe(ctx context.Context, opts ProbeOptions) CapabilitySet {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return CapabilitySet{
		// ffmpeg spells its version flag with a single dash.
		HasMediaEncoder: versionQuery(ctx, opts.FFmpegBinary, "-version", timeout),
		HasNeuralStack:  versionQuery(ctx, opts.NeuralBinary, "--version", timeout),
	}
}

func versionQuery(ctx context.Context, binary, versionFlag string, timeout time.Duration) bool {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return false
	}
	if _, err := exec.LookPath(binary); err != nil {
		return false
	}

	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := commandContext(queryCtx, binary, versionFlag)
	return cmd.Run() == nil
}
