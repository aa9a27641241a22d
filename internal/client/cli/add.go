package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/clickvault/pkg/api"
)

func addCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [site]",
		Short: "Store a secret for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			site := args[0]

			session, err := app.requireSession(ctx)
			if err != nil {
				return err
			}

			username, err := app.io.ReadInput("Site username (optional): ")
			if err != nil {
				return fmt.Errorf("failed to read username: %w", err)
			}

			secret, err := app.io.ReadPassword("Secret: ")
			if err != nil {
				return fmt.Errorf("failed to read secret: %w", err)
			}

			resp, err := app.api.VaultStore(ctx, session.AccessToken, api.VaultStoreRequest{
				Site:     site,
				Secret:   secret,
				Username: username,
			})
			if err != nil {
				return err
			}

			app.io.Printf("Stored secret for %s\n", resp.Site)
			return nil
		},
	}
}
