package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wavscribe/internal/logging"
	"wavscribe/internal/pipeline"
	"wavscribe/internal/services"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWithDeps(defaultDeps())
}

func newRootCommandWithDeps(deps commandDeps) *cobra.Command {
	flags := &runFlags{}
	var summary bool

	ctx := newCommandContext(flags, deps)

	rootCmd := &cobra.Command{
		Use:   "wavscribe",
		Short: "Change the speed and volume of a recording and transcribe it",
		Long: "wavscribe reads <input_path>/<lang>.wav, writes a sped-up or slowed-down copy with\n" +
			"adjusted volume to <output_path>/<timestamp>.wav, transcribes the original recording\n" +
			"and logs the result to <output_path>/<timestamp>.json.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return services.Wrap(services.ErrConfiguration, "cli", "args", fmt.Sprintf("unexpected arguments %q", args), nil)
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "cli", "logging", "", err)
			}
			recognizer, err := ctx.deps.newRecognizer(cfg.Recognition)
			if err != nil {
				return err
			}

			opts := []pipeline.Option{
				pipeline.WithLogger(logger),
				pipeline.WithStdout(cmd.OutOrStdout()),
			}
			if ctx.deps.lockDir != "" {
				opts = append(opts, pipeline.WithLockDir(ctx.deps.lockDir))
			}
			result, err := pipeline.NewRunner(recognizer, opts...).Run(cmd.Context(), cfg.Run)
			if err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), renderRunSummary(cfg.Run, result))
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.lang, "lang", "en", "Language of the input recording (en or ru)")
	pf.StringVar(&flags.speedScale, "speed_scale", "1.5", "Speed factor applied to the recording")
	pf.StringVar(&flags.volume, "volume", "+5", "Volume change in dB, \"+<n>\" or \"-<n>\"")
	pf.StringVar(&flags.inputPath, "input_path", "input_files", "Directory containing <lang>.wav")
	pf.StringVar(&flags.outputPath, "output_path", "output_files", "Directory for the transformed audio and run log")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (console or json)")
	pf.StringVar(&flags.logFile, "log-file", "", "Also append log output to this file")
	rootCmd.Flags().BoolVar(&summary, "summary", false, "Print a table describing the run outputs")

	ctx.changed = pf.Changed

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return services.Wrap(services.ErrConfiguration, "cli", "flags", "", err)
	})

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
