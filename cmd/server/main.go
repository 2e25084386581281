package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keywatch/internal/config"
	"keywatch/internal/server"
	"keywatch/internal/store"
)

const startupTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

// run starts the service and blocks until a signal arrives or the listener
// fails. It returns the process exit code.
func run() int {
	cfg := config.Load()
	setupLogger(cfg)

	yamlCfg, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		slog.Error("failed to load config file", "path", cfg.ConfigFile, "error", err)
		return 1
	}

	// The store must be reachable before any request is served.
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	keywords, err := server.OpenStore(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		slog.Error("failed to connect to keyword store", "error", err)
		return 1
	}

	if seeds := yamlCfg.SeedKeywords(); len(seeds) > 0 {
		if _, err := store.Seed(ctx, keywords, seeds); err != nil {
			cancel()
			keywords.Close()
			slog.Error("failed to seed keywords", "error", err)
			return 1
		}
	}
	cancel()

	srv := server.New(cfg)
	srv.RegisterRoutes(keywords)

	// Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	exitCode := 0
	select {
	case <-quit:
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		exitCode = 1
	}

	slog.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	keywords.Close()
	slog.Info("server exited", "code", exitCode)
	return exitCode
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
