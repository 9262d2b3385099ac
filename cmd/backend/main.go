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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/sentidemo/internal/adapter/aiclient"
	"github.com/pscheid92/sentidemo/internal/adapter/httpserver"
	"github.com/pscheid92/sentidemo/internal/adapter/metrics"
	"github.com/pscheid92/sentidemo/internal/adapter/postgres"
	"github.com/pscheid92/sentidemo/internal/app"
	"github.com/pscheid92/sentidemo/internal/platform/config"
	"github.com/pscheid92/sentidemo/internal/platform/logging"
	"github.com/pscheid92/sentidemo/internal/platform/version"
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

func setupConfig() *config.Backend {
	envFile := pflag.String("env-file", "", "dotenv file to load before reading the environment (default .env)")
	pflag.Parse()

	cfg, err := config.LoadBackend(*envFile)
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupService wires the AI client and the database clock. The database is not contacted
// here; an unreachable database only shows up in /api/db-time and /health/ready.
func setupService(cfg *config.Backend, reg prometheus.Registerer, clock clockwork.Clock) *app.Service {
	connString := postgres.ConnString(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
	dbClock, err := postgres.NewClock(connString, cfg.DBConnectTimeout)
	if err != nil {
		slog.Error("Failed to configure database client", "error", err)
		os.Exit(1)
	}

	analyzer := aiclient.New(cfg.AIURL(), cfg.AITimeout)
	slog.Info("AI service target", "ai_url", analyzer.URL(), "timeout", cfg.AITimeout)

	return app.NewService(analyzer, dbClock, cfg.DBInfo(), metrics.NewUpstreamMetrics(reg), clock)
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger("backend", cfg.LogLevel, cfg.LogFormat)
	build := version.For("backend")
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "build", build.String())

	reg := metrics.NewRegistry(build)
	svc := setupService(cfg, reg, clock)
	srv := httpserver.NewBackendServer(cfg, svc, reg, clock)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
