package cmd

import (
	"database/sql"

	"github.com/spf13/cobra"
	"github.com/templui/nocturne/internal/config"
	"github.com/templui/nocturne/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(
		migrateAction("up", "Apply all pending migrations", db.RunMigrations),
		migrateAction("down", "Roll back the latest migration", db.MigrateDown),
		migrateAction("status", "Show migration status", db.MigrationStatus),
	)
	return cmd
}

func migrateAction(use, short string, action func(*sql.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			return action(database.DB, cfg.DBDriver)
		},
	}
}
