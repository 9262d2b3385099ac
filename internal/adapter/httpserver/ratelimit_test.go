package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientAddr = "10.0.0.7:4321"

func limitedRequest(e *echo.Echo, handler echo.HandlerFunc, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/sentiment", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestRateLimiterAllowsBurst(t *testing.T) {
	e := echo.New()
	handler := newRateLimiter(10, 3)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for range 3 {
		rec := limitedRequest(e, handler, clientAddr)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterDeniesWithStructuredError(t *testing.T) {
	e := echo.New()
	handler := newRateLimiter(0.01, 1)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := limitedRequest(e, handler, clientAddr)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = limitedRequest(e, handler, clientAddr)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body["type"])
	assert.Equal(t, "rate limit exceeded", body["error"])
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	e := echo.New()
	handler := newRateLimiter(0.01, 1)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, http.StatusOK, limitedRequest(e, handler, clientAddr).Code)
	assert.Equal(t, http.StatusTooManyRequests, limitedRequest(e, handler, clientAddr).Code)
	assert.Equal(t, http.StatusOK, limitedRequest(e, handler, "10.0.0.8:4321").Code)
}
