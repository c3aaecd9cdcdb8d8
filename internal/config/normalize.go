package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeAudio()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() {
	if c.Video.FrameRate <= 0 {
		c.Video.FrameRate = defaultFrameRate
	}
	if strings.TrimSpace(c.Video.VideoCodec) == "" {
		c.Video.VideoCodec = defaultVideoCodec
	}
	if strings.TrimSpace(c.Video.AudioCodec) == "" {
		c.Video.AudioCodec = defaultAudioCodec
	}
	if strings.TrimSpace(c.Video.PixelFormat) == "" {
		c.Video.PixelFormat = defaultPixelFormat
	}
	if strings.TrimSpace(c.Video.VideoBitrate) == "" {
		c.Video.VideoBitrate = defaultVideoBitrate
	}
	if strings.TrimSpace(c.Video.AudioBitrate) == "" {
		c.Video.AudioBitrate = defaultAudioBitrate
	}
}

func (c *Config) normalizeAudio() {
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.Volume <= 0 {
		c.Audio.Volume = defaultToneVolume
	}
	if c.Audio.DefaultToneHz <= 0 {
		c.Audio.DefaultToneHz = defaultToneFrequencyHz
	}
}

func (c *Config) normalizeTools() {
	if value, ok := os.LookupEnv("VIDFORGE_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.Tools.FFmpegBinary = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("VIDFORGE_NEURAL_HELPER"); ok && strings.TrimSpace(value) != "" {
		c.Tools.NeuralBinary = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Tools.FFmpegBinary) == "" {
		c.Tools.FFmpegBinary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Tools.NeuralBinary) == "" {
		c.Tools.NeuralBinary = defaultNeuralBinary
	}
	if c.Tools.ProbeTimeoutSeconds <= 0 {
		c.Tools.ProbeTimeoutSeconds = defaultProbeTimeoutSeconds
	}
	if c.Tools.RenderTimeoutSeconds <= 0 {
		c.Tools.RenderTimeoutSeconds = defaultRenderTimeoutSeconds
	}
	if c.Tools.NeuralTimeoutSeconds <= 0 {
		c.Tools.NeuralTimeoutSeconds = defaultNeuralTimeoutSeconds
	}
	if c.Placeholder.ClipSeconds <= 0 {
		c.Placeholder.ClipSeconds = defaultPlaceholderClipSecs
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
