package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/clickvault/internal/client/storage"
)

func statusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.store.GetSession(cmd.Context())
			if err != nil {
				if err == storage.ErrSessionNotFound {
					app.io.Println("Not authenticated.")
					return nil
				}
				return fmt.Errorf("failed to get session: %w", err)
			}

			app.io.Printf("Identity: %s\n", session.IdentityKey)
			if session.ImageURL != "" {
				app.io.Printf("Image:    %s\n", session.ImageURL)
			}
			if time.Now().After(session.ExpiresAt) {
				app.io.Println("Session:  expired")
			} else {
				app.io.Printf("Session:  valid, expires in %s\n",
					time.Until(session.ExpiresAt).Round(time.Second))
			}
			return nil
		},
	}
}
