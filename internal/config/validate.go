package config

import (
	"fmt"
	"strings"

	"wavscribe/internal/language"
	"wavscribe/internal/services"
)

// Validate ensures the configuration is usable. Speed scale problems carry the
// invalid speed scale marker; everything else is a configuration error.
func (c *Config) Validate() error {
	if err := c.validateRun(); err != nil {
		return err
	}
	if err := c.validateRecognition(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRun() error {
	if !language.Supported(c.Run.Lang) {
		return configError("run.lang must be one of %s, got %q", strings.Join(language.Codes(), ", "), c.Run.Lang)
	}
	if _, err := ParseSpeedScale(c.Run.SpeedScale); err != nil {
		return err
	}
	if c.Run.Volume == "" {
		return configError("run.volume must be set (format \"+<dB>\" or \"-<dB>\")")
	}
	return nil
}

func (c *Config) validateRecognition() error {
	switch c.Recognition.Provider {
	case ProviderGoogle, ProviderOpenAI:
	default:
		return configError("recognition.provider must be %q or %q, got %q", ProviderGoogle, ProviderOpenAI, c.Recognition.Provider)
	}
	if c.Recognition.TimeoutSeconds < 0 {
		return configError("recognition.timeout_seconds must be positive")
	}
	if c.Recognition.Provider == ProviderOpenAI && c.Recognition.APIKey == "" && c.Recognition.Endpoint == defaultOpenAIURL {
		return configError("recognition.api_key is required for the openai provider. Set OPENAI_API_KEY or edit the config (create with 'wavscribe config init')")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return configError("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return configError("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func configError(format string, args ...any) error {
	return services.Wrap(services.ErrConfiguration, "config", "validate", fmt.Sprintf(format, args...), nil)
}

func speedScaleError(format string, args ...any) error {
	return services.Wrap(services.ErrInvalidSpeedScale, "config", "speed_scale", fmt.Sprintf(format, args...), nil)
}
