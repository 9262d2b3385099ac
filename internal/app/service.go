package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/sentidemo/internal/adapter/metrics"
	"github.com/pscheid92/sentidemo/internal/domain"
)

const (
	helloMessage   = "Hello from the Go backend"
	unknownFailure = "unknown error"
)

// Service orchestrates the backend's use cases.
type Service struct {
	analyzer domain.SentimentAnalyzer
	db       domain.DBClock
	dbInfo   domain.DBInfo
	upstream *metrics.UpstreamMetrics
	clock    clockwork.Clock
}

// NewService creates the backend service. upstream may be nil to skip metrics.
func NewService(analyzer domain.SentimentAnalyzer, db domain.DBClock, dbInfo domain.DBInfo, upstream *metrics.UpstreamMetrics, clock clockwork.Clock) *Service {
	return &Service{
		analyzer: analyzer,
		db:       db,
		dbInfo:   dbInfo,
		upstream: upstream,
		clock:    clock,
	}
}

// Hello returns the static greeting with the configured database location.
func (s *Service) Hello() domain.Greeting {
	return domain.Greeting{Message: helloMessage, DB: s.dbInfo}
}

// DBTime asks the database for its current time.
func (s *Service) DBTime(ctx context.Context) domain.DBTimeOutcome {
	start := s.clock.Now()
	now, err := s.db.Now(ctx)
	s.observe(metrics.UpstreamPostgres, err, start)

	if err != nil {
		slog.WarnContext(ctx, "Database time query failed", "error", err)
		return domain.DBTimeOutcome{Error: errorMessage(err)}
	}
	return domain.DBTimeOutcome{DBTime: now}
}

// Sentiment forwards text to the AI service.
func (s *Service) Sentiment(ctx context.Context, text string) domain.SentimentOutcome {
	start := s.clock.Now()
	body, err := s.analyzer.Analyze(ctx, text)
	s.observe(metrics.UpstreamAI, err, start)

	if err != nil {
		slog.WarnContext(ctx, "AI service call failed", "ai_url", s.analyzer.URL(), "error", err)
		return domain.SentimentOutcome{Error: errorMessage(err), AIURL: s.analyzer.URL()}
	}
	return domain.SentimentOutcome{Body: body, AIURL: s.analyzer.URL()}
}

// Ping reports whether the database is reachable, for readiness probes.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Service) observe(upstream string, err error, start time.Time) {
	if s.upstream == nil {
		return
	}
	s.upstream.Observe(upstream, err, s.clock.Since(start))
}

// errorMessage guarantees a non-empty message for the error field.
func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownFailure
}
