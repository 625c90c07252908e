package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/adapters/apiclient"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

func newShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current portfolio document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return err
			}

			client := apiclient.New(cfg.Web.APIBaseURL, cfg.Web.Timeout)
			p, err := client.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			if p == nil {
				fmt.Fprintln(out, "no portfolio yet")
				return nil
			}
			printPortfolio(out, p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

func printPortfolio(w io.Writer, p *portfolio.Portfolio) {
	if p.ID != nil {
		fmt.Fprintf(w, "id:      %s\n", p.ID)
	}
	fmt.Fprintf(w, "name:    %s\n", p.Name)
	fmt.Fprintf(w, "title:   %s\n", p.Title)
	fmt.Fprintf(w, "about:   %s\n", p.About)
	fmt.Fprintf(w, "skills:  %s\n", strings.Join(p.Skills, ", "))
	fmt.Fprintf(w, "email:   %s\n", p.Contact.Email)
	fmt.Fprintf(w, "phone:   %s\n", p.Contact.Phone)
	fmt.Fprintf(w, "projects (%d):\n", len(p.Projects))
	for i, proj := range p.Projects {
		fmt.Fprintf(w, "  %d. %s\n", i+1, proj.Title)
		if proj.Description != "" {
			fmt.Fprintf(w, "     %s\n", proj.Description)
		}
		if proj.GithubURL != "" {
			fmt.Fprintf(w, "     github: %s\n", proj.GithubURL)
		}
		if proj.DemoURL != "" {
			fmt.Fprintf(w, "     demo:   %s\n", proj.DemoURL)
		}
	}
}
