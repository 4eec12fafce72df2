package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeRender()
	return c.normalizeHistory()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
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

func (c *Config) normalizeRender() {
	if value, ok := os.LookupEnv("AVCLAPPER_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.Render.FFprobe = strings.TrimSpace(value)
	}
	c.Render.FFprobe = strings.TrimSpace(c.Render.FFprobe)
	if c.Render.FFprobe == "" {
		c.Render.FFprobe = defaultRenderFFprobe
	}
	c.Render.Avconv = strings.TrimSpace(c.Render.Avconv)
	if c.Render.Avconv == "" {
		c.Render.Avconv = defaultRenderAvconv
	}
	c.Render.FrameSize = strings.ToLower(strings.TrimSpace(c.Render.FrameSize))
	if strings.TrimSpace(c.Render.VideoCodec) == "" {
		c.Render.VideoCodec = defaultRenderVideoCodec
	}
	if strings.TrimSpace(c.Render.AudioCodec) == "" {
		c.Render.AudioCodec = defaultRenderAudioCodec
	}
	if strings.TrimSpace(c.Render.Preset) == "" {
		c.Render.Preset = defaultRenderPreset
	}
	if strings.TrimSpace(c.Render.OutputPattern) == "" {
		c.Render.OutputPattern = defaultRenderOutput
	}
	if c.Render.ProbeTimeout <= 0 {
		c.Render.ProbeTimeout = defaultRenderProbeTimeout
	}
}

func (c *Config) normalizeHistory() error {
	path := strings.TrimSpace(c.History.Path)
	if path == "" {
		c.History.Path = filepath.Join(c.Paths.DataDir, defaultHistoryFile)
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	c.History.Path = expanded
	return nil
}
