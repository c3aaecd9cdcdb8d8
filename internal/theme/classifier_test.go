package theme

import (
	"reflect"
	"testing"
)

func TestClassifyIsDeterministic(t *testing.T) {
	first := Classify("rainforest automation")
	second := Classify("rainforest automation")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification not deterministic: %+v vs %+v", first, second)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	lower := Classify("forest walk")
	mixed := Classify("Forest Walk")
	if !reflect.DeepEqual(lower, mixed) {
		t.Fatalf("case sensitivity leak: %+v vs %+v", lower, mixed)
	}
	if lower.VisualPattern != PatternOrganic {
		t.Fatalf("expected organic pattern for forest prompt, got %s", lower.VisualPattern)
	}
}

func TestClassifyEmptyPromptFallsThroughToDefault(t *testing.T) {
	profile := Classify("")
	if !reflect.DeepEqual(profile, Default()) {
		t.Fatalf("empty prompt should yield default profile, got %+v", profile)
	}
	if profile.VisualPattern != PatternTestPattern {
		t.Fatalf("unexpected default pattern: %s", profile.VisualPattern)
	}
	if profile.ToneFrequencyHz != 280 {
		t.Fatalf("unexpected default tone: %v", profile.ToneFrequencyHz)
	}
	if len(profile.AudioElements) != 0 {
		t.Fatalf("default profile must carry no audio cues, got %v", profile.AudioElements)
	}
}

func TestVisualRulePrecedenceFirstMatchWins(t *testing.T) {
	// "automation growth" matches both business rules; automation appears
	// first in the table so it must win.
	profile := Classify("automation growth")
	if profile.VisualPattern != PatternGeometric {
		t.Fatalf("unexpected pattern: %s", profile.VisualPattern)
	}
	if profile.ToneFrequencyHz != 240 {
		t.Fatalf("expected the automation rule (240 Hz) to win, got %v Hz", profile.ToneFrequencyHz)
	}

	// Environment rules precede business rules outright.
	mixed := Classify("office automation")
	if mixed.ToneFrequencyHz != 220 {
		t.Fatalf("expected the office rule to win over automation, got %v Hz", mixed.ToneFrequencyHz)
	}
}

func TestVisualRuleOrderIsPinned(t *testing.T) {
	want := []string{"rainforest", "coastal", "office", "automation", "growth", "innovation"}
	if got := VisualRuleNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("visual rule priority changed: got %v want %v", got, want)
	}
}

func TestAudioRulesAppendAcrossCategories(t *testing.T) {
	profile := Classify("rainforest automation")

	if profile.VisualPattern != PatternOrganic {
		t.Fatalf("rainforest rule should win the visual pick, got %s", profile.VisualPattern)
	}

	var sawRain, sawClicks bool
	for _, cue := range profile.AudioElements {
		if cue == "gentle_rain.wav" {
			sawRain = true
		}
		if cue == "mechanical_clicks.wav" {
			sawClicks = true
		}
	}
	if !sawRain {
		t.Fatalf("expected a rainforest cue, got %v", profile.AudioElements)
	}
	if !sawClicks {
		t.Fatalf("expected an automation cue, got %v", profile.AudioElements)
	}
}

func TestAudioRulesEmptyForUnmatchedPrompt(t *testing.T) {
	profile := Classify("abstract nothingness")
	if len(profile.AudioElements) != 0 {
		t.Fatalf("expected no cues, got %v", profile.AudioElements)
	}
}
