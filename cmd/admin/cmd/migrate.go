package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/healthtrack/internal/config"
	"github.com/templui/healthtrack/internal/db"
)

func MigrateCmd(cfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(c *cobra.Command, args []string) error {
			return withDB(cfg(), func(database *sqlx.DB) error {
				return db.RunMigrations(database.DB, cfg().DBDriver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(c *cobra.Command, args []string) error {
			return withDB(cfg(), func(database *sqlx.DB) error {
				return db.MigrateDown(database.DB, cfg().DBDriver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied migration version",
		RunE: func(c *cobra.Command, args []string) error {
			return withDB(cfg(), func(database *sqlx.DB) error {
				version, err := db.Version(database.DB, cfg().DBDriver)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "version %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

func withDB(cfg *config.Config, fn func(database *sqlx.DB) error) error {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close(database)
	}()

	return fn(database)
}
