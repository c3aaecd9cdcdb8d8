package strategy

import "github.com/google/uuid"

// Strategy names, in chain priority order. These strings land in metadata
// and the history ledger, so they are part of the external contract.
const (
	NameNeuralImageThenMotion  = "neural_image_then_motion"
	NameImageAnimationFallback = "image_animation_fallback"
	NameProceduralFilterGraph  = "procedural_filter_graph"
	NameMinimalPlaceholder     = "minimal_placeholder"
)

// Status tags a strategy attempt's result.
type Status int

const (
	// StatusSuccess terminates the chain with a usable artifact.
	StatusSuccess Status = iota
	// StatusUnavailable means the strategy's prerequisite is missing; the
	// chain skips to the next strategy without noise.
	StatusUnavailable
	// StatusFailed means the strategy was attempted and errored; the chain
	// logs the failure and advances.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one strategy attempt.
type Outcome struct {
	Status       Status
	ArtifactPath string
	BytesWritten int64
	Reason       string
	Err          error
}

// Success builds a terminal outcome for a produced artifact.
func Success(artifactPath string, bytesWritten int64) Outcome {
	return Outcome{Status: StatusSuccess, ArtifactPath: artifactPath, BytesWritten: bytesWritten}
}

// Unavailable builds a skip outcome for a missing prerequisite.
func Unavailable(reason string) Outcome {
	return Outcome{Status: StatusUnavailable, Reason: reason}
}

// Failed builds an advance outcome for an attempted-but-errored strategy.
func Failed(reason string, err error) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason, Err: err}
}

// Request is the immutable description of one generation request.
type Request struct {
	ID              uuid.UUID
	Prompt          string
	Width           int
	Height          int
	DurationSeconds int
	AudioLayer      bool
	OutputPath      string
}
