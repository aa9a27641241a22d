// Package cli реализует cobra команды клиента ClickVault
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iudanet/clickvault/internal/client/api"
	"github.com/iudanet/clickvault/internal/client/iocli"
	"github.com/iudanet/clickvault/internal/client/storage"
	"github.com/iudanet/clickvault/internal/client/storage/boltdb"
)

// App связывает api клиент, локальный кеш сессии и терминальный ввод-вывод
type App struct {
	api   *api.Client
	store storage.SessionStorage
	io    iocli.IO

	closeStore func() error
}

var (
	serverURL string
	dbPath    string
)

// Execute разбирает аргументы и запускает команду
func Execute(version string) error {
	app := &App{}

	root := &cobra.Command{
		Use:     "clickvault",
		Short:   "Click-point credential vault client",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dbPath = filepath.Join(dir, ".clickvault-client.db")
			}

			bolt, err := boltdb.New(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("failed to open local storage: %w", err)
			}

			app.api = api.NewClient(serverURL)
			app.store = bolt
			app.io = iocli.NewStdio()
			app.closeStore = bolt.Close
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.closeStore != nil {
				return app.closeStore()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "server base URL")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to local session cache (default ~/.clickvault-client.db)")

	root.AddCommand(
		registerCmd(app),
		loginCmd(app),
		logoutCmd(app),
		statusCmd(app),
		addCmd(app),
		getCmd(app),
		listCmd(app),
	)

	return root.Execute()
}
