package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"vidforge/internal/config"
	"vidforge/internal/metadata"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// setupCLITestEnv writes a config that points all paths at a temp directory
// and all tool binaries at names that cannot resolve, so commands exercise
// the fully offline path.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Tools.FFmpegBinary = "vidforge-test-missing-ffmpeg"
	cfg.Tools.NeuralBinary = "vidforge-test-missing-neural"
	cfg.Tools.ProbeTimeoutSeconds = 1
	cfg.Logging.Format = "json"

	configPath := filepath.Join(base, "config.toml")
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{cfg: &cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	full := append([]string{"--config", env.configPath}, args...)
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(full)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func TestGenerateCommandOfflineProducesPlaceholder(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.baseDir, "videos", "calm.mp4")

	out, err := runCLI(t, env, "generate", "--prompt", "calm focus", "--output", output)
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	requireContains(t, out, "Generated")
	requireContains(t, out, "minimal_placeholder")

	info, statErr := os.Stat(output)
	if statErr != nil || info.Size() == 0 {
		t.Fatalf("artifact missing or empty: %v", statErr)
	}
	sidecar := strings.TrimSuffix(output, ".mp4") + "_metadata.json"
	data, readErr := os.ReadFile(sidecar)
	if readErr != nil {
		t.Fatalf("metadata sidecar missing: %v", readErr)
	}
	var record metadata.Record
	if jsonErr := json.Unmarshal(data, &record); jsonErr != nil {
		t.Fatalf("sidecar not valid JSON: %v", jsonErr)
	}
	if record.FileSizeBytes != info.Size() {
		t.Fatalf("sidecar file_size_bytes = %d, want artifact size %d", record.FileSizeBytes, info.Size())
	}
	if !record.IsFallback {
		t.Fatal("placeholder success must be recorded as a fallback")
	}
}

func TestGenerateCommandAudioIsOptIn(t *testing.T) {
	env := setupCLITestEnv(t)

	readSidecar := func(output string) metadata.Record {
		t.Helper()
		sidecar := strings.TrimSuffix(output, ".mp4") + "_metadata.json"
		data, err := os.ReadFile(sidecar)
		if err != nil {
			t.Fatalf("read sidecar: %v", err)
		}
		var record metadata.Record
		if err := json.Unmarshal(data, &record); err != nil {
			t.Fatalf("decode sidecar: %v", err)
		}
		return record
	}

	silent := filepath.Join(env.baseDir, "videos", "silent.mp4")
	if out, err := runCLI(t, env, "generate", "--prompt", "calm focus", "--output", silent); err != nil {
		t.Fatalf("generate without audio flag: %v\n%s", err, out)
	}
	if record := readSidecar(silent); record.AudioEnabled {
		t.Fatal("audio must stay disabled unless requested")
	}

	voiced := filepath.Join(env.baseDir, "videos", "voiced.mp4")
	if out, err := runCLI(t, env, "generate", "--prompt", "calm focus", "--output", voiced, "--audio"); err != nil {
		t.Fatalf("generate with audio flag: %v\n%s", err, out)
	}
	if record := readSidecar(voiced); !record.AudioEnabled {
		t.Fatal("--audio must enable the audio layer")
	}
}

func TestGenerateCommandRequiresPrompt(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, env, "generate", "--output", filepath.Join(env.baseDir, "x.mp4"))
	if err == nil || !strings.Contains(err.Error(), "prompt") {
		t.Fatalf("expected missing prompt error, got %v", err)
	}
}

func TestHistoryCommandAfterGenerate(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.baseDir, "videos", "ledgered.mp4")

	if out, err := runCLI(t, env, "generate", "--prompt", "rainforest retreat", "--output", output); err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}

	out, err := runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	requireContains(t, out, "rainforest retreat")
	requireContains(t, out, "minimal_placeholder")
}

func TestHistoryCommandEmptyLedger(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	requireContains(t, out, "No generations recorded")
}

func TestCapabilitiesCommandOffline(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "capabilities")
	if err != nil {
		t.Fatalf("capabilities: %v\n%s", err, out)
	}
	requireContains(t, out, "Media encoder usable: no")
	requireContains(t, out, "Neural stack usable: no")
}

func TestConfigShowCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, out)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "vidforge-test-missing-ffmpeg")
}

func TestConfigInitCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, statErr := os.Stat(target); statErr != nil {
		t.Fatalf("expected config file at %s: %v", target, statErr)
	}

	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("second init without --overwrite must fail")
	}
}
