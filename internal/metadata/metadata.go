package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Record is the JSON sidecar written next to every generated artifact. Field
// names are part of the external contract; downstream pipelines parse them.
type Record struct {
	Prompt          string   `json:"prompt"`
	DurationSeconds int      `json:"duration_seconds"`
	Resolution      string   `json:"resolution"`
	AudioEnabled    bool     `json:"audio_enabled"`
	AudioElements   []string `json:"audio_elements"`
	StrategyUsed    string   `json:"strategy_used"`
	GeneratedAt     string   `json:"generated_at"`
	FileSizeBytes   int64    `json:"file_size_bytes"`
	IsFallback      bool     `json:"is_fallback"`
	GraphRepaired   bool     `json:"graph_repaired"`
}

// Resolution formats width and height into the sidecar's "WxH" form.
func Resolution(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// Timestamp formats t the way the sidecar expects.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// SidecarPath derives the metadata path for an artifact: the artifact path
// with its extension replaced by a "_metadata.json" suffix.
func SidecarPath(artifactPath string) string {
	ext := filepath.Ext(artifactPath)
	return strings.TrimSuffix(artifactPath, ext) + "_metadata.json"
}

// Write persists the record next to the artifact. The sidecar is required
// output, so any filesystem error propagates to the caller.
func Write(artifactPath string, record Record) (string, error) {
	if record.AudioElements == nil {
		record.AudioElements = []string{}
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	path := SidecarPath(artifactPath)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return path, nil
}
