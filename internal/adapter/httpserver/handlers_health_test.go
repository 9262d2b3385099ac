package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/sentidemo/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_BothServices(t *testing.T) {
	servers := map[string]*Server{
		"ai":      newTestAIServer(t),
		"backend": newTestBackendServer(t, &mockBackendService{}),
	}

	for name, srv := range servers {
		t.Run(name, func(t *testing.T) {
			rec := serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		})
	}
}

func TestHealth_IgnoresDatabaseState(t *testing.T) {
	backend := &mockBackendService{pingFn: func(context.Context) error { return errors.New("down") }}
	srv := newTestBackendServer(t, backend)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleLiveness(t *testing.T) {
	clock := clockwork.NewFakeClock()
	srv := NewAIServer(&config.AI{Port: "8001"}, nil, prometheus.NewRegistry(), clock)
	clock.Advance(90 * time.Second)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/live", nil), rec)

	require.NoError(t, srv.handleLiveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ai","uptime":90}`, rec.Body.String())
}

func TestHandleReadiness_AllHealthy(t *testing.T) {
	srv := newTestBackendServer(t, &mockBackendService{})

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"postgres":"ok"}}`, rec.Body.String())
}

func TestHandleReadiness_PostgresDown(t *testing.T) {
	backend := &mockBackendService{pingFn: func(context.Context) error { return errors.New("database unreachable") }}
	srv := newTestBackendServer(t, backend)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{
		"status": "unhealthy",
		"failed_check": "postgres",
		"error": "database unreachable",
		"checks": {"postgres": "database unreachable"}
	}`, rec.Body.String())
}

func TestHandleReadiness_AIHasNoChecks(t *testing.T) {
	srv := newTestAIServer(t)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_ReportsEveryCheck(t *testing.T) {
	srv := newTestBackendServer(t, &mockBackendService{})
	srv.healthChecks = append(srv.healthChecks,
		HealthCheck{Name: "ai", Check: func(context.Context) error { return errors.New("connection refused") }},
		HealthCheck{Name: "disk", Check: func(context.Context) error { return errors.New("full") }},
	)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{
		"status": "unhealthy",
		"failed_check": "ai",
		"error": "connection refused",
		"checks": {"postgres": "ok", "ai": "connection refused", "disk": "full"}
	}`, rec.Body.String())
}

func TestHandleVersion(t *testing.T) {
	srv := newTestAIServer(t)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"service":"ai"`)
	assert.Contains(t, body, `"version"`)
	assert.Contains(t, body, `"commit"`)
	assert.Contains(t, body, `"build_time"`)
	assert.Contains(t, body, `"go_version"`)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestAIServer(t)
	serve(srv, jsonRequest(http.MethodPost, "/api/sentiment", `{"text":"good"}`))

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sentidemo_sentiment_scored_total{label="1"} 1`)
	assert.Contains(t, rec.Body.String(), `sentidemo_http_requests_total{method="POST",route="/api/sentiment",status_code="200"} 1`)
}
