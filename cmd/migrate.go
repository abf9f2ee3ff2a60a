package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/archia-server/database"
	"github.com/dtroode/archia-server/internal/config"
)

func newMigrateCommand(rootOpts *rootOptions) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply every pending schema migration to DATABASE_DSN.

With --status the state of each migration is printed and nothing is applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig(rootOpts.envFile)
			if err != nil {
				return err
			}

			if !status {
				return database.Migrate(cmd.Context(), cfg.Database.DSN)
			}

			db, err := sql.Open("pgx", cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			return database.Status(cmd.Context(), db)
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "print migration status instead of migrating")

	return cmd
}
