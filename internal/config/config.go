package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Video contains default rendering geometry and encoder parameters.
type Video struct {
	Width                int    `toml:"width"`
	Height               int    `toml:"height"`
	DurationSeconds      int    `toml:"duration_seconds"`
	ShortDurationSeconds int    `toml:"short_duration_seconds"`
	FrameRate            int    `toml:"frame_rate"`
	VideoCodec           string `toml:"video_codec"`
	AudioCodec           string `toml:"audio_codec"`
	PixelFormat          string `toml:"pixel_format"`
	VideoBitrate         string `toml:"video_bitrate"`
	AudioBitrate         string `toml:"audio_bitrate"`
}

// Audio contains synthetic audio-layer parameters.
type Audio struct {
	SampleRate    int     `toml:"sample_rate"`
	Volume        float64 `toml:"volume"`
	DefaultToneHz float64 `toml:"default_tone_hz"`
}

// Tools describes the external binaries the generator may delegate to and the
// wall-clock bounds on talking to them.
type Tools struct {
	FFmpegBinary         string `toml:"ffmpeg_binary"`
	NeuralBinary         string `toml:"neural_binary"`
	ProbeTimeoutSeconds  int    `toml:"probe_timeout_seconds"`
	RenderTimeoutSeconds int    `toml:"render_timeout_seconds"`
	NeuralTimeoutSeconds int    `toml:"neural_timeout_seconds"`
}

// Placeholder controls the terminal fallback artifact.
type Placeholder struct {
	ClipSeconds int `toml:"clip_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vidforge.
//
// Sections by subsystem:
//   - Paths: state (history database) and log directories
//   - Video: default geometry, duration, and encoder parameters
//   - Audio: synthetic tone and mix settings
//   - Tools: external binary names and timeouts
//   - Placeholder: terminal fallback clip length
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Video       Video       `toml:"video"`
	Audio       Audio       `toml:"audio"`
	Tools       Tools       `toml:"tools"`
	Placeholder Placeholder `toml:"placeholder"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vidforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vidforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryDBPath returns the location of the generation history database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// SampleConfig returns the embedded commented sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the commented sample configuration to the target path.
func CreateSample(target string) error {
	if err := os.WriteFile(target, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading tilde and resolves the path to absolute form.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
