package main

import (
	"fmt"

	"github.com/SscSPs/academic_docs_app/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply (up) or revert one step of (down) the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("PGSQL_URL is required to run migrations")
			}
			direction := database.MigrateUp
			if len(args) == 1 {
				direction = database.MigrationDirection(args[0])
			}
			return database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, direction, newLogger(cfg))
		},
	}
	return cmd
}
