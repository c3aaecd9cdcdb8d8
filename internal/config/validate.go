package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("video.width and video.height must be positive (got %dx%d)", c.Video.Width, c.Video.Height)
	}
	if c.Video.DurationSeconds <= 0 {
		return errors.New("video.duration_seconds must be positive")
	}
	if c.Video.ShortDurationSeconds <= 0 {
		return errors.New("video.short_duration_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.Volume > 1 {
		return errors.New("audio.volume must not exceed 1.0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be auto, console, or json (got %q)", c.Logging.Format)
	}
}
