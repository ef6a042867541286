package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"wavscribe/internal/config"
	"wavscribe/internal/services"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GOOGLE_SPEECH_API_KEY", "env-key")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "wavscribe", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Run.Lang != "en" || cfg.Run.SpeedScale != "1.5" || cfg.Run.Volume != "+5" {
		t.Fatalf("unexpected run defaults: %+v", cfg.Run)
	}
	if cfg.Run.InputPath != "input_files" || cfg.Run.OutputPath != "output_files" {
		t.Fatalf("unexpected path defaults: %+v", cfg.Run)
	}
	if cfg.Recognition.Provider != config.ProviderGoogle {
		t.Fatalf("unexpected provider %q", cfg.Recognition.Provider)
	}
	if cfg.Recognition.APIKey != "env-key" {
		t.Fatalf("expected key from env, got %q", cfg.Recognition.APIKey)
	}
	if !strings.Contains(cfg.Recognition.Endpoint, "speech-api/v2/recognize") {
		t.Fatalf("unexpected endpoint %q", cfg.Recognition.Endpoint)
	}
}

func TestLoadCustomPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wavscribe.toml")

	custom := config.Default()
	custom.Run.Lang = "ru"
	custom.Run.SpeedScale = "0.75"
	custom.Run.Volume = "-3"
	custom.Recognition.Provider = "openai"
	custom.Recognition.APIKey = "sk-test"
	custom.Logging.Format = "json"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Run.Lang != "ru" || cfg.Run.Volume != "-3" {
		t.Fatalf("unexpected run config: %+v", cfg.Run)
	}
	scale, err := cfg.Run.SpeedFactor()
	if err != nil || scale != 0.75 {
		t.Fatalf("unexpected speed factor %v (%v)", scale, err)
	}
	if cfg.Recognition.Model != "whisper-1" {
		t.Fatalf("expected default openai model, got %q", cfg.Recognition.Model)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format %q", cfg.Logging.Format)
	}
}

func TestLoadOverridesWinOverFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wavscribe.toml")
	if err := os.WriteFile(configPath, []byte("[run]\nlang = \"ru\"\nvolume = \"-1\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath, func(c *config.Config) {
		c.Run.Lang = "en"
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Run.Lang != "en" {
		t.Fatalf("expected override to win, got %q", cfg.Run.Lang)
	}
	if cfg.Run.Volume != "-1" {
		t.Fatalf("expected file value to survive, got %q", cfg.Run.Volume)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wavscribe.toml")
	if err := os.WriteFile(configPath, []byte("[run]\nlanguage = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateRun(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		marker error
	}{
		{"unsupported lang", func(c *config.Config) { c.Run.Lang = "de" }, services.ErrConfiguration},
		{"zero speed", func(c *config.Config) { c.Run.SpeedScale = "0" }, services.ErrInvalidSpeedScale},
		{"negative speed", func(c *config.Config) { c.Run.SpeedScale = "-1.5" }, services.ErrInvalidSpeedScale},
		{"non numeric speed", func(c *config.Config) { c.Run.SpeedScale = "fast" }, services.ErrInvalidSpeedScale},
		{"nan speed", func(c *config.Config) { c.Run.SpeedScale = "NaN" }, services.ErrInvalidSpeedScale},
		{"empty volume", func(c *config.Config) { c.Run.Volume = "" }, services.ErrConfiguration},
		{"provider", func(c *config.Config) { c.Recognition.Provider = "azure" }, services.ErrConfiguration},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, services.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.marker) {
				t.Fatalf("expected %v, got %v", tt.marker, err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestParseSpeedScale(t *testing.T) {
	for _, value := range []string{"1", "1.5", " 2.0 ", "0.5"} {
		if _, err := config.ParseSpeedScale(value); err != nil {
			t.Fatalf("ParseSpeedScale(%q) returned %v", value, err)
		}
	}
}

func TestRunInputFile(t *testing.T) {
	run := config.Run{Lang: "ru", InputPath: "input_files"}
	if got, want := run.InputFile(), filepath.Join("input_files", "ru.wav"); got != want {
		t.Fatalf("InputFile() = %q, want %q", got, want)
	}
}

func TestCreateSampleLoads(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists || cfg.Run.Lang != "en" {
		t.Fatalf("unexpected sample load: exists=%v cfg=%+v", exists, cfg.Run)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/audio")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "audio") {
		t.Fatalf("unexpected expansion %q", got)
	}
}

func TestLoadExpandsLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	configPath := filepath.Join(t.TempDir(), "wavscribe.toml")
	content := "[logging]\nfile = \"~/logs/wavscribe.log\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(home, "logs", "wavscribe.log"); cfg.Logging.File != want {
		t.Fatalf("logging.file = %q, want %q", cfg.Logging.File, want)
	}
}
