package config

const (
	defaultStateDir             = "~/.local/share/vidforge"
	defaultLogDir               = "~/.local/share/vidforge/logs"
	defaultWidth                = 1920
	defaultHeight               = 1080
	defaultDurationSeconds      = 15
	defaultShortDurationSeconds = 30
	defaultFrameRate            = 25
	defaultVideoCodec           = "libx264"
	defaultAudioCodec           = "aac"
	defaultPixelFormat          = "yuv420p"
	defaultVideoBitrate         = "1000k"
	defaultAudioBitrate         = "128k"
	defaultSampleRate           = 44100
	defaultToneVolume           = 0.1
	defaultToneFrequencyHz      = 280
	defaultFFmpegBinary         = "ffmpeg"
	defaultNeuralBinary         = "svd-cli"
	defaultProbeTimeoutSeconds  = 5
	defaultRenderTimeoutSeconds = 300
	defaultNeuralTimeoutSeconds = 600
	defaultPlaceholderClipSecs  = 2
	defaultLogFormat            = "auto"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Video: Video{
			Width:                defaultWidth,
			Height:               defaultHeight,
			DurationSeconds:      defaultDurationSeconds,
			ShortDurationSeconds: defaultShortDurationSeconds,
			FrameRate:            defaultFrameRate,
			VideoCodec:           defaultVideoCodec,
			AudioCodec:           defaultAudioCodec,
			PixelFormat:          defaultPixelFormat,
			VideoBitrate:         defaultVideoBitrate,
			AudioBitrate:         defaultAudioBitrate,
		},
		Audio: Audio{
			SampleRate:    defaultSampleRate,
			Volume:        defaultToneVolume,
			DefaultToneHz: defaultToneFrequencyHz,
		},
		Tools: Tools{
			FFmpegBinary:         defaultFFmpegBinary,
			NeuralBinary:         defaultNeuralBinary,
			ProbeTimeoutSeconds:  defaultProbeTimeoutSeconds,
			RenderTimeoutSeconds: defaultRenderTimeoutSeconds,
			NeuralTimeoutSeconds: defaultNeuralTimeoutSeconds,
		},
		Placeholder: Placeholder{
			ClipSeconds: defaultPlaceholderClipSecs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
