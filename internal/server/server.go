// Package server собирает HTTP сервер ClickVault: маршруты, цепочку
// middleware и graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/clickvault/internal/clickmap"
	"github.com/iudanet/clickvault/internal/config"
	"github.com/iudanet/clickvault/internal/images"
	"github.com/iudanet/clickvault/internal/server/handlers"
	"github.com/iudanet/clickvault/internal/server/middleware"
	"github.com/iudanet/clickvault/internal/server/storage"
)

// Storage - объединение store интерфейсов, которые нужны серверу
type Storage interface {
	storage.IdentityStorage
	storage.VaultStorage
}

// Server представляет HTTP сервер ClickVault
type Server struct {
	logger       *slog.Logger
	httpServer   *http.Server
	stopLimiters func()
}

// New собирает сервер: handlers, маршруты и middleware цепочку
// recovery -> logging -> ratelimit -> (auth для /vault)
func New(cfg *config.Config, logger *slog.Logger, store Storage, provider images.Provider, encKey []byte, version string) *Server {
	jwtConfig := handlers.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.TokenTTL,
	}

	authHandler := handlers.NewAuthHandler(
		logger, store, provider, jwtConfig, encKey,
		cfg.ClickTolerance, clickmap.Metric(cfg.ClickMetric), cfg.DependencyTimeout,
	)
	vaultHandler := handlers.NewVaultHandler(logger, store, store, encKey, cfg.DependencyTimeout)
	healthHandler := handlers.NewHealthHandler(logger, version)

	requireAuth := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /register/image", authHandler.RegisterImage)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.Handle("GET /vault", requireAuth(http.HandlerFunc(vaultHandler.List)))
	mux.Handle("POST /vault", requireAuth(http.HandlerFunc(vaultHandler.Store)))
	mux.Handle("GET /vault/{site}", requireAuth(http.HandlerFunc(vaultHandler.Retrieve)))

	rateLimit, stopLimiters := middleware.RateLimitMiddleware(cfg.RateLimit, cfg.RateWindow, logger,
		middleware.AuthPathLimit{Path: "/register", Rate: cfg.AuthRateLimit, Window: cfg.AuthRateWindow},
		middleware.AuthPathLimit{Path: "/login", Rate: cfg.AuthRateLimit, Window: cfg.AuthRateWindow},
	)

	var handler http.Handler = mux
	handler = rateLimit(handler)
	handler = middleware.LoggingMiddleware(logger, "/healthz")(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger:       logger,
		stopLimiters: stopLimiters,
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Run запускает сервер и блокируется до отмены ctx, после чего делает
// graceful shutdown с ограничением по времени
func (s *Server) Run(ctx context.Context) error {
	defer s.stopLimiters()

	errC := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
