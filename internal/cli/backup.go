package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/adapters/backup_storage"
	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func backupStore(cfg config.Config, log logger.Logger) (service.Uploader, error) {
	if cfg.Cloudinary.CloudName != "" {
		return backup_storage.NewCloudinaryAdapter(cfg, log)
	}
	return backup_storage.NewLocalAdapter(cfg.Backup.Dir), nil
}

func newBackupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Dump the database with pg_dump and store the archive",
		Long: "Dump the database with pg_dump. The archive is uploaded to Cloudinary when\n" +
			"cloudinary.cloud_name is set, otherwise it is written under backup.dir.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return err
			}
			if cfg.DB.DSN == "" {
				return errNoDSN
			}

			store, err := backupStore(cfg, app.log())
			if err != nil {
				return err
			}

			uc := backup.NewBackupUseCase(cfg.DB.DSN, cfg.Backup.Folder, app.dump(), store, app.log())
			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup stored at %s (%d bytes)\n", out.Location, out.Size)
			return nil
		},
	}
}
