package renderspec

import (
	"fmt"
	"strings"

	"vidforge/internal/theme"
)

// Spec is a fully parameterized rendering instruction set. The video graph is
// split into a lavfi source and a filter chain; both are guaranteed non-empty
// and the filter chain always terminates with an explicit scale to the target
// geometry.
type Spec struct {
	VideoSource  string
	VideoFilters string
	AudioSource  string
	AudioFilters string

	Width           int
	Height          int
	DurationSeconds int
	FrameRate       int

	// Repaired records that profile-specific construction produced an empty
	// or malformed graph and the default test-pattern graph was substituted.
	Repaired bool
}

// VideoGraph renders the combined source+filter description for logs and
// diagnostics.
func (s Spec) VideoGraph() string {
	return s.VideoSource + "," + s.VideoFilters
}

// AudioGraph renders the combined audio description for logs and diagnostics.
func (s Spec) AudioGraph() string {
	if s.AudioFilters == "" {
		return s.AudioSource
	}
	return s.AudioSource + "," + s.AudioFilters
}

// Params carries the request geometry and the configured defaults the builder
// substitutes into graph templates.
type Params struct {
	Width           int
	Height          int
	DurationSeconds int
	FrameRate       int
	SampleRate      int
	Volume          float64
	DefaultToneHz   float64
	AudioLayer      bool
}

// Build derives a Spec from a theme profile and request parameters. It is
// deterministic, and it never returns a Spec with an empty video or audio
// graph: when the profile yields nothing usable the default test-pattern
// graph is substituted and the repair is recorded on the Spec.
func Build(profile theme.Profile, params Params) Spec {
	spec := Spec{
		Width:           params.Width,
		Height:          params.Height,
		DurationSeconds: params.DurationSeconds,
		FrameRate:       params.FrameRate,
	}

	source, ok := patternSource(profile.VisualPattern, params)
	if !ok {
		source, _ = patternSource(theme.PatternTestPattern, params)
		profile.Color = theme.Default().Color
		spec.Repaired = true
	}
	spec.VideoSource = source
	spec.VideoFilters = videoFilters(profile.Color, params)

	tone := profile.ToneFrequencyHz
	if tone <= 0 {
		tone = params.DefaultToneHz
		spec.Repaired = true
	}
	spec.AudioSource = audioSource(tone, params)
	spec.AudioFilters = fmt.Sprintf("volume=%s", trimFloat(params.Volume))

	return spec
}

func patternSource(pattern theme.VisualPattern, params Params) (string, bool) {
	geometry := fmt.Sprintf("size=%dx%d:rate=%d", params.Width, params.Height, params.FrameRate)
	switch pattern {
	case theme.PatternOrganic:
		return "mandelbrot=" + geometry, true
	case theme.PatternCellular:
		return "life=" + geometry, true
	case theme.PatternGeometric:
		return "testsrc2=" + geometry, true
	case theme.PatternTestPattern:
		return "testsrc=" + geometry, true
	default:
		return "", false
	}
}

// videoFilters renders the grading chain. The trailing scale stage is a
// structural invariant: every spec declares its output geometry explicitly,
// independent of the source pattern's native size.
func videoFilters(color theme.ColorParams, params Params) string {
	hueDegrees := color.Hue * 360
	return fmt.Sprintf("hue=s=%s:h=%s,scale=%d:%d",
		trimFloat(color.Saturation), trimFloat(hueDegrees), params.Width, params.Height)
}

func audioSource(toneHz float64, params Params) string {
	if !params.AudioLayer {
		return fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", params.SampleRate)
	}
	return fmt.Sprintf("sine=frequency=%s:sample_rate=%d", trimFloat(toneHz), params.SampleRate)
}

func trimFloat(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", value), "0"), ".")
}
