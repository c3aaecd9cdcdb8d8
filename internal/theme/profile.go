package theme

// VisualPattern enumerates the procedural source families a profile can map
// to.
type VisualPattern string

const (
	PatternGeometric   VisualPattern = "geometric"
	PatternOrganic     VisualPattern = "organic"
	PatternCellular    VisualPattern = "cellular"
	PatternTestPattern VisualPattern = "test_pattern"
)

// ColorParams holds normalized color grading parameters. Hue is a fraction of
// the color wheel (0..1); Saturation is the ffmpeg hue-filter multiplier.
type ColorParams struct {
	Hue        float64
	Saturation float64
}

// Profile is the parameter bundle derived from a prompt: visual pattern,
// color grading, ambient audio cues, and the synthetic tone frequency.
type Profile struct {
	VisualPattern   VisualPattern
	Color           ColorParams
	AudioElements   []string
	ToneFrequencyHz float64
}

// Default returns the profile applied when no visual rule matches.
func Default() Profile {
	return Profile{
		VisualPattern:   PatternTestPattern,
		Color:           ColorParams{Hue: 0.5, Saturation: 0.4},
		ToneFrequencyHz: 280,
	}
}
