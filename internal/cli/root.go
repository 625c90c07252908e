package cli

import (
	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// App carries the values shared by every subcommand.
type App struct {
	ConfigDir  string
	APIBaseURL string

	cfg    *config.Config
	logger logger.Logger
	dumper backup.Dumper
}

func (a *App) dump() backup.Dumper {
	if a.dumper != nil {
		return a.dumper
	}
	return backup.PgDump
}

func (a *App) config() (config.Config, error) {
	if a.cfg != nil {
		return *a.cfg, nil
	}
	cfg, err := config.LoadConfig(a.ConfigDir)
	if err != nil {
		return config.Config{}, err
	}
	if a.APIBaseURL != "" {
		cfg.Web.APIBaseURL = a.APIBaseURL
	}
	a.cfg = &cfg
	return cfg, nil
}

func (a *App) log() logger.Logger {
	if a.logger == nil {
		env := "development"
		if a.cfg != nil {
			env = a.cfg.App.Env
		}
		a.logger = logger.NewZapLogger(env)
	}
	return a.logger
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "portfolioctl",
		Short:        "Operate the portfolio service",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", ".", "Directory holding .env and config.yaml")
	cmd.PersistentFlags().StringVar(&app.APIBaseURL, "api", "", "Portfolio API base URL (overrides web.api_base_url)")

	cmd.AddCommand(
		newMigrateCmd(app),
		newSeedOwnerCmd(app),
		newShowCmd(app),
		newBackupCmd(app),
	)
	return cmd
}
