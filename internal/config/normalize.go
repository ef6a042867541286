package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRun(); err != nil {
		return err
	}
	c.normalizeRecognition()
	return c.normalizeLogging()
}

func (c *Config) normalizeRun() error {
	c.Run.Lang = strings.ToLower(strings.TrimSpace(c.Run.Lang))
	c.Run.SpeedScale = strings.TrimSpace(c.Run.SpeedScale)
	c.Run.Volume = strings.TrimSpace(c.Run.Volume)
	c.Run.InputPath = strings.TrimSpace(c.Run.InputPath)
	if c.Run.InputPath == "" {
		c.Run.InputPath = defaultInputPath
	}
	c.Run.OutputPath = strings.TrimSpace(c.Run.OutputPath)
	if c.Run.OutputPath == "" {
		c.Run.OutputPath = defaultOutputPath
	}
	// Relative paths are kept as given so the run log reflects the invocation.
	var err error
	if strings.HasPrefix(c.Run.InputPath, "~") {
		if c.Run.InputPath, err = expandPath(c.Run.InputPath); err != nil {
			return fmt.Errorf("run.input_path: %w", err)
		}
	}
	if strings.HasPrefix(c.Run.OutputPath, "~") {
		if c.Run.OutputPath, err = expandPath(c.Run.OutputPath); err != nil {
			return fmt.Errorf("run.output_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeRecognition() {
	c.Recognition.Provider = strings.ToLower(strings.TrimSpace(c.Recognition.Provider))
	if c.Recognition.Provider == "" {
		c.Recognition.Provider = defaultProvider
	}
	c.Recognition.Endpoint = strings.TrimSpace(c.Recognition.Endpoint)
	c.Recognition.APIKey = strings.TrimSpace(c.Recognition.APIKey)
	c.Recognition.Model = strings.TrimSpace(c.Recognition.Model)

	switch c.Recognition.Provider {
	case ProviderGoogle:
		if c.Recognition.Endpoint == "" {
			c.Recognition.Endpoint = defaultGoogleURL
		}
		if c.Recognition.APIKey == "" {
			if value, ok := os.LookupEnv("GOOGLE_SPEECH_API_KEY"); ok {
				c.Recognition.APIKey = strings.TrimSpace(value)
			}
		}
	case ProviderOpenAI:
		if c.Recognition.Endpoint == "" {
			c.Recognition.Endpoint = defaultOpenAIURL
		}
		if c.Recognition.Model == "" {
			c.Recognition.Model = defaultOpenAIModel
		}
		if c.Recognition.APIKey == "" {
			if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
				c.Recognition.APIKey = strings.TrimSpace(value)
			}
		}
	}
	if c.Recognition.TimeoutSeconds == 0 {
		c.Recognition.TimeoutSeconds = defaultTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
