package theme

// visualRule maps a keyword set to a full profile patch. Rules are evaluated
// top to bottom and the first match wins; reordering this table is a behavior
// change for callers.
type visualRule struct {
	name     string
	keywords []string
	pattern  VisualPattern
	color    ColorParams
	toneHz   float64
}

var visualRules = []visualRule{
	{
		name:     "rainforest",
		keywords: []string{"rainforest", "forest"},
		pattern:  PatternOrganic,
		color:    ColorParams{Hue: 0.33, Saturation: 0.7},
		toneHz:   174,
	},
	{
		name:     "coastal",
		keywords: []string{"coastal", "beach", "ocean"},
		pattern:  PatternCellular,
		color:    ColorParams{Hue: 0.55, Saturation: 0.5},
		toneHz:   285,
	},
	{
		name:     "office",
		keywords: []string{"office", "workspace"},
		pattern:  PatternTestPattern,
		color:    ColorParams{Hue: 0.08, Saturation: 0.3},
		toneHz:   220,
	},
	{
		name:     "automation",
		keywords: []string{"automation", "productivity"},
		pattern:  PatternGeometric,
		color:    ColorParams{Hue: 0.1, Saturation: 0.35},
		toneHz:   240,
	},
	{
		name:     "growth",
		keywords: []string{"growth", "success"},
		pattern:  PatternGeometric,
		color:    ColorParams{Hue: 0.25, Saturation: 0.45},
		toneHz:   260,
	},
	{
		name:     "innovation",
		keywords: []string{"innovation", "creative"},
		pattern:  PatternGeometric,
		color:    ColorParams{Hue: 0.7, Saturation: 0.6},
		toneHz:   300,
	},
}

// audioRule appends ambient cues. Unlike visual rules these are not mutually
// exclusive: every matching rule contributes, so a prompt can layer an
// environment set and a business set.
type audioRule struct {
	keywords []string
	cues     []string
}

var audioRules = []audioRule{
	{
		keywords: []string{"rainforest", "forest"},
		cues:     []string{"gentle_rain.wav", "bird_calls.wav", "rustling_leaves.wav"},
	},
	{
		keywords: []string{"beach", "coastal"},
		cues:     []string{"ocean_waves.wav", "gentle_breeze.wav"},
	},
	{
		keywords: []string{"office", "workspace"},
		cues:     []string{"soft_typing.wav", "paper_shuffle.wav", "coffee_pour.wav"},
	},
	{
		keywords: []string{"automation"},
		cues:     []string{"mechanical_clicks.wav", "soft_notifications.wav"},
	},
	{
		keywords: []string{"growth", "success"},
		cues:     []string{"satisfying_completion.wav", "achievement_chime.wav"},
	},
}
