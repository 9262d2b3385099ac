package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/sentidemo/internal/adapter/httpserver"
	"github.com/pscheid92/sentidemo/internal/adapter/metrics"
	"github.com/pscheid92/sentidemo/internal/platform/config"
	"github.com/pscheid92/sentidemo/internal/platform/logging"
	"github.com/pscheid92/sentidemo/internal/platform/version"
	"github.com/pscheid92/sentidemo/internal/sentiment"
	"github.com/spf13/pflag"
)

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	envFile := pflag.String("env-file", "", "dotenv file to load before reading the environment (default .env)")
	pflag.Parse()

	cfg, err := config.LoadAI(*envFile)
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.InitLogger("ai", cfg.LogLevel, cfg.LogFormat)
	build := version.For("ai")
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "build", build.String())

	scorer := sentiment.NewDefaultScorer()
	srv := httpserver.NewAIServer(cfg, scorer, metrics.NewRegistry(build), clockwork.NewRealClock())

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
