package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/config"
	"github.com/mmynk/tripsplit/internal/demo"
	"github.com/mmynk/tripsplit/internal/eventlog"
	"github.com/mmynk/tripsplit/internal/storage/sqldb"
	"github.com/mmynk/tripsplit/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := sqldb.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Database.Driver)

	worker := eventlog.NewWorker(store, cfg.Events.BufferSize)
	worker.Start()
	defer worker.Shutdown()

	if cfg.Demo.Seed {
		if _, err := demo.Seed(ctx, store, time.Now()); err != nil {
			return err
		}
	}

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		slog.Warn("Using the default JWT secret; set TRIPSPLIT_AUTH_JWT_SECRET outside development")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	router, err := newRouter(routerConfig{
		store:       store,
		jwtManager:  auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration),
		events:      worker,
		registry:    registry,
		staticDir:   staticDir,
		requireAuth: cfg.Auth.Required,
	})
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
