package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/sentidemo/internal/adapter/metrics"
	"github.com/pscheid92/sentidemo/internal/domain"
	"github.com/pscheid92/sentidemo/internal/platform/config"
)

// scorer is the AI service's view of the lexicon scorer.
type scorer interface {
	Analyze(text string) domain.SentimentResponse
}

// backendService is the backend's view of the application layer.
type backendService interface {
	Hello() domain.Greeting
	DBTime(ctx context.Context) domain.DBTimeOutcome
	Sentiment(ctx context.Context, text string) domain.SentimentOutcome
	Ping(ctx context.Context) error
}

// Server serves either the AI routes or the backend routes, plus the shared health,
// version, and metrics endpoints.
type Server struct {
	echo  *echo.Echo
	name  string
	port  string
	clock clockwork.Clock

	registry    *prometheus.Registry
	httpMetrics *metrics.HTTPMetrics

	rateLimitRPS   float64
	rateLimitBurst int
	allowOrigins   []string

	scorer           scorer
	sentimentMetrics *metrics.SentimentMetrics

	backend backendService

	healthChecks []HealthCheck
	startTime    time.Time
}

// NewAIServer creates the lexicon sentiment service.
func NewAIServer(cfg *config.AI, analyzer scorer, reg *prometheus.Registry, clock clockwork.Clock) *Server {
	s := newServer("ai", cfg.Port, reg, clock)
	s.rateLimitRPS = cfg.RateLimitRPS
	s.rateLimitBurst = cfg.RateLimitBurst
	s.scorer = analyzer
	s.sentimentMetrics = metrics.NewSentimentMetrics(reg)

	s.registerRoutes()
	return s
}

// NewBackendServer creates the backend service. The database backs the readiness probe.
func NewBackendServer(cfg *config.Backend, backend backendService, reg *prometheus.Registry, clock clockwork.Clock) *Server {
	s := newServer("backend", cfg.Port, reg, clock)
	s.rateLimitRPS = cfg.RateLimitRPS
	s.rateLimitBurst = cfg.RateLimitBurst
	s.allowOrigins = frontendOrigins
	s.backend = backend
	s.healthChecks = []HealthCheck{{Name: "postgres", Check: backend.Ping}}

	s.registerRoutes()
	return s
}

func newServer(name, port string, reg *prometheus.Registry, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	return &Server{
		echo:        e,
		name:        name,
		port:        port,
		clock:       clock,
		registry:    reg,
		httpMetrics: metrics.NewHTTPMetrics(reg),
		startTime:   clock.Now(),
	}
}

func (s *Server) Start() error {
	slog.Info("Starting server", "service", s.name, "port", s.port)
	if err := s.echo.Start(":" + s.port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// readText extracts the "text" field from an arbitrary JSON body. Absent, null, non-string,
// or unparsable input yields the empty string.
func readText(c echo.Context) string {
	var payload map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		slog.DebugContext(c.Request().Context(), "Ignoring unreadable request body", "error", err)
		return ""
	}
	text, _ := payload["text"].(string)
	return text
}
