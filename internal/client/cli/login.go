package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/clickvault/internal/client/storage"
	"github.com/iudanet/clickvault/pkg/api"
)

func loginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with password and click points",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app.io.Println("=== Login ===")
			app.io.Println()

			identityKey, err := app.io.ReadInput("Identity key: ")
			if err != nil {
				return fmt.Errorf("failed to read identity key: %w", err)
			}

			password, err := app.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			// Если есть кешированная сессия этой identity - подсказываем
			// reference изображение
			if cached, err := app.store.GetSession(ctx); err == nil && cached.IdentityKey == identityKey && cached.ImageURL != "" {
				app.io.Printf("Your reference image: %s\n", cached.ImageURL)
			}
			app.io.Println("Enter your click points in order.")

			points, err := app.readPoints()
			if err != nil {
				return err
			}

			app.io.Println()
			app.io.Println("Authenticating...")

			resp, err := app.api.Login(ctx, api.LoginRequest{
				IdentityKey: identityKey,
				Password:    password,
				Points:      points,
			})
			if err != nil {
				return err
			}

			session := &storage.Session{
				IdentityKey: identityKey,
				AccessToken: resp.AccessToken,
				ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
				ImageURL:    resp.ImageURL,
			}
			if err := app.store.SaveSession(ctx, session); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			app.io.Println()
			app.io.Println("Login successful!")
			app.io.Printf("Identity: %s\n", identityKey)
			app.io.Printf("Token expires in: %d seconds\n", resp.ExpiresIn)

			return nil
		},
	}
}
