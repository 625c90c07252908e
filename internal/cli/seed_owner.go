package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/adapters/persistence"
	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
)

func newSeedOwnerCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-owner",
		Short: "Create the owner account or reset its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return err
			}
			if cfg.DB.DSN == "" {
				return errNoDSN
			}

			pool, err := persistence.NewPostgresPool(cfg, app.log())
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := authUC.NewSeedOwnerUseCase(persistence.NewPostgresUserRepo(pool, app.log()), app.log())
			out, err := uc.Execute(cmd.Context(), authUC.SeedOwnerInput{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added or updated owner '%s' (%s)\n", email, out.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Owner email")
	cmd.Flags().StringVar(&password, "password", "", "Owner password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
