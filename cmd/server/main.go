package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/clickvault/internal/config"
	"github.com/iudanet/clickvault/internal/crypto"
	"github.com/iudanet/clickvault/internal/images"
	"github.com/iudanet/clickvault/internal/server"
	"github.com/iudanet/clickvault/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// -version обрабатывается до разбора конфигурации
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			os.Exit(0)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Ключ шифрования только загружается - никогда не генерируется здесь
	encKey, err := crypto.LoadKey(cfg.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to load encryption key: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown по сигналу
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
	}()

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	provider := images.NewUnsplashClient(cfg.UnsplashBaseURL, cfg.UnsplashAccessKey, cfg.DependencyTimeout)

	srv := server.New(cfg, logger, store, provider, encKey, Version)

	logger.Info("starting ClickVault server",
		"version", Version,
		"address", cfg.Address,
		"tolerance", cfg.ClickTolerance,
		"metric", cfg.ClickMetric,
		"token_ttl", cfg.TokenTTL.String(),
	)

	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func printVersion() {
	fmt.Printf("ClickVault Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
