package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return c.validateHistory()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.FPS <= 0 {
		return errors.New("render.fps must be positive")
	}
	if c.Render.SampleRate <= 0 {
		return errors.New("render.sample_rate must be positive")
	}
	if c.Render.FrameSize != "" {
		if _, _, err := ParseFrameSize(c.Render.FrameSize); err != nil {
			return fmt.Errorf("render.frame_size: %w", err)
		}
	}
	if !strings.Contains(c.Render.OutputPattern, "%") {
		return errors.New("render.output_pattern must contain a numeric verb such as %03d")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Keep < 0 {
		return errors.New("history.keep must be zero or positive")
	}
	return nil
}

// ParseFrameSize splits a WIDTHxHEIGHT string.
func ParseFrameSize(value string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(value)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid frame size %q (want WIDTHxHEIGHT)", value)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid frame width in %q", value)
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid frame height in %q", value)
	}
	return width, height, nil
}
