package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giovaniif/stock-dashboard/infra/repositories"
)

var migrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the stock tables, optionally seeding demo records",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBDriver == repositories.DriverMemory {
			return fmt.Errorf("migrate: nothing to do for driver %q", cfg.DBDriver)
		}
		ctx := cmd.Context()

		db, err := repositories.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repositories.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info().Str("driver", cfg.DBDriver).Msg("schema ready")

		if migrateSeed {
			if err := repositories.Seed(ctx, db, cfg.DBDriver); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			logger.Info().Int("stock", len(repositories.DemoStock)).Int("issues", len(repositories.DemoIssues)).Msg("demo records seeded (skipped when stock records exist)")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "insert demo stock and issue records")
}
