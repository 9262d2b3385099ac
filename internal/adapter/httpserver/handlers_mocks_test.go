package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/sentidemo/internal/domain"
	"github.com/pscheid92/sentidemo/internal/platform/config"
	"github.com/pscheid92/sentidemo/internal/sentiment"
)

// --- Mock implementations ---

type mockBackendService struct {
	helloFn     func() domain.Greeting
	dbTimeFn    func(ctx context.Context) domain.DBTimeOutcome
	sentimentFn func(ctx context.Context, text string) domain.SentimentOutcome
	pingFn      func(ctx context.Context) error
}

func (m *mockBackendService) Hello() domain.Greeting {
	if m.helloFn != nil {
		return m.helloFn()
	}
	return domain.Greeting{Message: "hi", DB: domain.DBInfo{Host: "localhost", Port: 5432, Name: "appdb"}}
}

func (m *mockBackendService) DBTime(ctx context.Context) domain.DBTimeOutcome {
	if m.dbTimeFn != nil {
		return m.dbTimeFn(ctx)
	}
	return domain.DBTimeOutcome{DBTime: "2024-05-17 09:03:07+00:00"}
}

func (m *mockBackendService) Sentiment(ctx context.Context, text string) domain.SentimentOutcome {
	if m.sentimentFn != nil {
		return m.sentimentFn(ctx, text)
	}
	return domain.SentimentOutcome{Body: json.RawMessage(`{"label":1,"score":0.5}`)}
}

func (m *mockBackendService) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type panickingScorer struct{}

func (panickingScorer) Analyze(string) domain.SentimentResponse {
	panic(errors.New("scorer exploded"))
}

// --- Test helpers ---

func newTestAIServer(t *testing.T, opts ...func(*config.AI)) *Server {
	t.Helper()

	cfg := &config.AI{Port: "8001", RateLimitBurst: 20}
	for _, opt := range opts {
		opt(cfg)
	}
	return NewAIServer(cfg, sentiment.NewDefaultScorer(), prometheus.NewRegistry(), clockwork.NewFakeClock())
}

func newTestBackendServer(t *testing.T, backend backendService, opts ...func(*config.Backend)) *Server {
	t.Helper()

	cfg := &config.Backend{Port: "8000", RateLimitBurst: 20}
	for _, opt := range opts {
		opt(cfg)
	}
	return NewBackendServer(cfg, backend, prometheus.NewRegistry(), clockwork.NewFakeClock())
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}
