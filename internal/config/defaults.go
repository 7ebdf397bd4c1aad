package config

const (
	defaultOutputDir           = "~/.local/share/voxscribe/transcripts"
	defaultTempDir             = "~/.local/share/voxscribe/tmp"
	defaultLogDir              = "~/.local/share/voxscribe/logs"
	defaultDiarizationModel    = "large-v3"
	defaultTranscriptionBinary = "whisper-cli"
	defaultLanguage            = "en"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			TempDir:   defaultTempDir,
			LogDir:    defaultLogDir,
		},
		Diarization: Diarization{
			Model: defaultDiarizationModel,
		},
		Transcription: Transcription{
			Binary:   defaultTranscriptionBinary,
			Language: defaultLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
