package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomlog/internal/config"
	"github.com/vovakirdan/roomlog/internal/store/sqlite"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var overrides config.Config

	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Manage the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(_ *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, logger, err := opts.load(overrides)
			if err != nil {
				logger.Error().Err(err).Msg("failed to load configuration")
				return err
			}

			st, err := sqlite.New(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			switch direction {
			case "up":
				err = sqlite.Migrate(st.DB(), logger)
			case "down":
				err = sqlite.MigrateDown(st.DB(), logger)
			case "status":
				err = sqlite.MigrationStatus(st.DB(), logger)
			}
			if err != nil {
				logger.Error().Err(err).Str("direction", direction).Msg("migration failed")
				return err
			}

			version, err := sqlite.SchemaVersion(st.DB(), logger)
			if err != nil {
				return err
			}
			logger.Info().Str("db_path", cfg.DatabasePath).Int64("version", version).Msg("schema version")
			return nil
		},
	}

	cmd.Flags().StringVar(&overrides.DatabasePath, "database", "", "SQLite database path")
	return cmd
}
