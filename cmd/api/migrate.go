package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/database"
	"storefront/internal/database/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema when it is missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.NewPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		return migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host)
	},
}
