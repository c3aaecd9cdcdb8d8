package theme

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Classify derives a Profile from free-form prompt text. It is pure and total:
// matching is case-insensitive containment, the first visual rule to match
// wins outright, and prompts that match nothing (including the empty string)
// fall through to Default. Audio rules are evaluated independently and every
// match appends its cues.
func Classify(prompt string) Profile {
	folded := folder.String(prompt)

	profile := Default()
	for _, rule := range visualRules {
		if containsAny(folded, rule.keywords) {
			profile.VisualPattern = rule.pattern
			profile.Color = rule.color
			profile.ToneFrequencyHz = rule.toneHz
			break
		}
	}

	for _, rule := range audioRules {
		if containsAny(folded, rule.keywords) {
			profile.AudioElements = append(profile.AudioElements, rule.cues...)
		}
	}

	return profile
}

// VisualRuleNames returns rule names in priority order, primarily so tests
// and tooling can pin the ordering contract.
func VisualRuleNames() []string {
	names := make([]string, 0, len(visualRules))
	for _, rule := range visualRules {
		names = append(names, rule.name)
	}
	return names
}

func containsAny(folded string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(folded, folder.String(keyword)) {
			return true
		}
	}
	return false
}
