package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"wavscribe/internal/config"
	"wavscribe/internal/recognition"
)

// runFlags holds the values of the persistent flags shared by every command.
type runFlags struct {
	configPath string
	lang       string
	speedScale string
	volume     string
	inputPath  string
	outputPath string
	logLevel   string
	logFormat  string
	logFile    string
}

// commandDeps are the collaborators tests replace.
type commandDeps struct {
	newRecognizer func(config.Recognition) (recognition.Recognizer, error)
	lockDir       string
}

func defaultDeps() commandDeps {
	return commandDeps{
		newRecognizer: func(cfg config.Recognition) (recognition.Recognizer, error) {
			return recognition.New(cfg)
		},
	}
}

type commandContext struct {
	flags   *runFlags
	changed func(name string) bool
	deps    commandDeps

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(flags *runFlags, deps commandDeps) *commandContext {
	return &commandContext{
		flags:   flags,
		changed: func(string) bool { return false },
		deps:    deps,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.configPath), c.flagOverrides())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// configDetail describes where the loaded configuration came from.
func (c *commandContext) configDetail() string {
	if c.configSeen {
		return c.configPath
	}
	return fmt.Sprintf("%s (not found, using defaults)", c.configPath)
}

// flagOverrides layers explicitly passed flags over the file values. Flags
// left at their defaults never mask the config file.
func (c *commandContext) flagOverrides() config.Override {
	return func(cfg *config.Config) {
		set := func(name string, dst *string, value string) {
			if c.changed(name) {
				*dst = value
			}
		}
		set("lang", &cfg.Run.Lang, c.flags.lang)
		set("speed_scale", &cfg.Run.SpeedScale, c.flags.speedScale)
		set("volume", &cfg.Run.Volume, c.flags.volume)
		set("input_path", &cfg.Run.InputPath, c.flags.inputPath)
		set("output_path", &cfg.Run.OutputPath, c.flags.outputPath)
		set("log-level", &cfg.Logging.Level, c.flags.logLevel)
		set("log-format", &cfg.Logging.Format, c.flags.logFormat)
		set("log-file", &cfg.Logging.File, c.flags.logFile)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
