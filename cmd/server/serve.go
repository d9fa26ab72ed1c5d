package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomlog/internal/app"
	"github.com/vovakirdan/roomlog/internal/config"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var overrides config.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, overrides)
		},
	}

	// Zero defaults: only flags the user sets override the config file.
	flags := cmd.Flags()
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.DatabasePath, "database", "", "SQLite database path")
	flags.DurationVar(&overrides.ReadHeaderTimeout, "read-header-timeout", 0, "HTTP read header timeout")
	flags.DurationVar(&overrides.RequestTimeout, "request-timeout", 0, "per-request deadline")
	flags.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")

	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions, overrides config.Config) error {
	cfg, logger, err := opts.load(overrides)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	application, err := app.New(&cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize application")
		return err
	}

	logger.Info().Str("addr", cfg.Addr).Msg("starting roomlog server")
	if err := application.Run(cmd.Context()); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
