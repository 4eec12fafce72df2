package config

const (
	defaultDataDir            = "~/.local/share/avclapper"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultRenderFPS          = 25
	defaultRenderSampleRate   = 48000
	defaultRenderAvconv       = "avclapper_avconv"
	defaultRenderFFprobe      = "ffprobe"
	defaultRenderVideoCodec   = "libx264"
	defaultRenderAudioCodec   = "libmp3lame"
	defaultRenderPreset       = "ultrafast"
	defaultRenderOutput       = "out%03d.mp4"
	defaultRenderProbeTimeout = 30
	defaultHistoryEnabled     = true
	defaultHistoryFile        = "history.db"
	defaultHistoryKeep        = 200
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Render: Render{
			FPS:           defaultRenderFPS,
			SampleRate:    defaultRenderSampleRate,
			Avconv:        defaultRenderAvconv,
			FFprobe:       defaultRenderFFprobe,
			VideoCodec:    defaultRenderVideoCodec,
			AudioCodec:    defaultRenderAudioCodec,
			Preset:        defaultRenderPreset,
			OutputPattern: defaultRenderOutput,
			ProbeTimeout:  defaultRenderProbeTimeout,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Keep:    defaultHistoryKeep,
		},
	}
}
