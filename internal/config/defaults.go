package config

const (
	defaultConfigPath  = "~/.config/wavscribe/config.toml"
	projectConfigName  = "wavscribe.toml"
	defaultLang        = "en"
	defaultSpeedScale  = "1.5"
	defaultVolume      = "+5"
	defaultInputPath   = "input_files"
	defaultOutputPath  = "output_files"
	defaultProvider    = ProviderGoogle
	defaultGoogleURL   = "http://www.google.com/speech-api/v2/recognize"
	defaultOpenAIURL   = "https://api.openai.com/v1/audio/transcriptions"
	defaultOpenAIModel = "whisper-1"
	defaultTimeout     = 60
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	// Scales above this would overflow the reinterpreted frame rate of any
	// realistic input.
	maxSpeedScale = 1000
)

// Recognition providers.
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Run: Run{
			Lang:       defaultLang,
			SpeedScale: defaultSpeedScale,
			Volume:     defaultVolume,
			InputPath:  defaultInputPath,
			OutputPath: defaultOutputPath,
		},
		Recognition: Recognition{
			Provider:       defaultProvider,
			TimeoutSeconds: defaultTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
