package testsupport

import (
	"path/filepath"
	"testing"

	"wavscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose input and output directories live under a
// unique temp directory. The input directory is not created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Run.InputPath = filepath.Join(base, "input_files")
	cfgVal.Run.OutputPath = filepath.Join(base, "output_files")
	cfgVal.Recognition.Endpoint = "http://127.0.0.1:0/recognize"
	cfgVal.Recognition.APIKey = "test"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLang sets the run language.
func WithLang(lang string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.Lang = lang
	}
}

// WithSpeedAndVolume overrides the transform options.
func WithSpeedAndVolume(speedScale, volume string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.SpeedScale = speedScale
		b.cfg.Run.Volume = volume
	}
}

// WithInputTone writes a mono 16-bit sine recording to the configured input
// file so runs have something to load.
func WithInputTone(rate int, seconds float64) ConfigOption {
	return func(b *configBuilder) {
		WriteSineWAV(b.t, b.cfg.Run.InputFile(), rate, 1, seconds, 440, 8000)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Run.OutputPath)
}
