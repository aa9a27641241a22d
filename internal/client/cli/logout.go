package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/clickvault/internal/client/storage"
)

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the cached session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Session token stateless - logout это просто удаление кеша
			if err := app.store.DeleteSession(cmd.Context()); err != nil {
				if err == storage.ErrSessionNotFound {
					app.io.Println("Not logged in.")
					return nil
				}
				return fmt.Errorf("failed to delete session: %w", err)
			}
			app.io.Println("Logged out.")
			return nil
		},
	}
}
