package main

import (
	"github.com/rpgo/lifeplan/internal/calculation"
	"github.com/rpgo/lifeplan/internal/config"
	"github.com/rpgo/lifeplan/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel  string
	logFormat string

	settings *config.Settings
	logger   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "lifeplan",
		Short:         "Life plan financial projection",
		Long:          `Projects income, expenses, assets and liabilities year by year and applies life milestones such as marriage, a home purchase or military service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				settings.LogLevel = opts.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				settings.LogFormat = opts.logFormat
			}
			opts.settings = settings
			opts.logger = logging.New(logging.Config{
				Level:  settings.LogLevel,
				Format: settings.LogFormat,
				Out:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LIFEPLAN_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: json, console (overrides LIFEPLAN_LOG_FORMAT)")

	rootCmd.AddCommand(
		newProjectCmd(opts),
		newValidateCmd(opts),
		newExampleCmd(opts),
		newFormatsCmd(),
		newServeCmd(opts),
	)
	return rootCmd
}

// newEngine builds an engine from the loaded settings.
func (o *rootOptions) newEngine() *calculation.Engine {
	engine := calculation.NewEngine(o.settings.Assumptions)
	engine.SetMaxYears(o.settings.MaxYears)
	engine.SetLogger(logging.NewEngineLogger(o.logger))
	return engine
}

func (o *rootOptions) newParser() *config.InputParser {
	return &config.InputParser{MaxYears: o.settings.MaxYears}
}
