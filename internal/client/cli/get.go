package cli

import (
	"github.com/spf13/cobra"
)

func getCmd(app *App) *cobra.Command {
	var showPoints bool

	cmd := &cobra.Command{
		Use:   "get [site]",
		Short: "Retrieve the secret for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			site := args[0]

			session, err := app.requireSession(ctx)
			if err != nil {
				return err
			}

			resp, err := app.api.VaultGet(ctx, session.AccessToken, site)
			if err != nil {
				return err
			}

			app.io.Printf("Site:     %s\n", resp.Site)
			if resp.Username != "" {
				app.io.Printf("Username: %s\n", resp.Username)
			}
			app.io.Printf("Secret:   %s\n", resp.Secret)
			if showPoints {
				// Сервер возвращает reference изображение и click-map
				// владельца вместе с секретом
				app.io.Printf("Image:    %s\n", resp.ImageURL)
				for i, p := range resp.Points {
					app.io.Printf("Point %d:  %d,%d\n", i+1, p.X, p.Y)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPoints, "show-points", false, "also print the reference image and click points")
	return cmd
}
