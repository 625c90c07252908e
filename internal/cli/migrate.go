package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/adapters/persistence"
)

var errNoDSN = errors.New("db.dsn (DB_DSN) is not set")

func newMigrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	dsn := func() (string, string, error) {
		cfg, err := app.config()
		if err != nil {
			return "", "", err
		}
		if cfg.DB.DSN == "" {
			return "", "", errNoDSN
		}
		return cfg.DB.DSN, cfg.DB.MigrationsPath, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, path, err := dsn()
			if err != nil {
				return err
			}
			if err := persistence.RunMigrations(url, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, path, err := dsn()
			if err != nil {
				return err
			}
			if err := persistence.RollbackMigrations(url, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, path, err := dsn()
			if err != nil {
				return err
			}
			version, dirty, err := persistence.MigrationVersion(url, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%t)\n", version, dirty)
			return nil
		},
	})

	return cmd
}
