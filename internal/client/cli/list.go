package cli

import (
	"github.com/spf13/cobra"
)

func listCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, err := app.requireSession(ctx)
			if err != nil {
				return err
			}

			resp, err := app.api.VaultList(ctx, session.AccessToken)
			if err != nil {
				return err
			}

			if len(resp.Entries) == 0 {
				app.io.Println("Vault is empty.")
				return nil
			}

			app.io.Printf("Stored sites (%d):\n", len(resp.Entries))
			for _, e := range resp.Entries {
				if e.Username != "" {
					app.io.Printf("  %s (%s)\n", e.Site, e.Username)
				} else {
					app.io.Printf("  %s\n", e.Site)
				}
			}
			return nil
		},
	}
}
