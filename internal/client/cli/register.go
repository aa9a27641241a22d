package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/clickvault/pkg/api"
)

func registerCmd(app *App) *cobra.Command {
	var hint string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new identity with password and click-map",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app.io.Println("=== Registration ===")
			app.io.Println()

			identityKey, err := app.io.ReadInput("Identity key: ")
			if err != nil {
				return fmt.Errorf("failed to read identity key: %w", err)
			}

			password, err := app.io.ReadPassword("Password (min 8 chars): ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			confirm, err := app.io.ReadPassword("Confirm password: ")
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			// Сначала получаем candidate изображение: до выбора точек и до
			// какой-либо записи на сервере
			img, err := app.api.RegisterImage(ctx, hint)
			if err != nil {
				return err
			}

			app.io.Println()
			app.io.Printf("Reference image: %s\n", img.URL)
			app.io.Printf("Bounds: %dx%d\n", img.Width, img.Height)
			app.io.Println("Open the image and choose your click points in order.")
			app.io.Println()

			points, err := app.readPoints()
			if err != nil {
				return err
			}

			resp, err := app.api.Register(ctx, api.RegisterRequest{
				IdentityKey: identityKey,
				Password:    password,
				ImageURL:    img.URL,
				ImageWidth:  img.Width,
				ImageHeight: img.Height,
				Points:      points,
			})
			if err != nil {
				return err
			}

			app.io.Println()
			app.io.Println("Registration successful!")
			app.io.Printf("Identity: %s\n", identityKey)
			app.io.Printf("Image:    %s\n", resp.ImageURL)
			app.io.Println()
			app.io.Println("Remember your click points in order - they are your second factor.")
			app.io.Println("Please run 'clickvault login' to start using the vault.")

			return nil
		},
	}

	cmd.Flags().StringVar(&hint, "hint", "", "image search hint (e.g. nature, city)")
	return cmd
}
