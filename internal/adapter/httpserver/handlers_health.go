package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/sentidemo/internal/platform/version"
)

const readinessProbeTimeout = 5 * time.Second

// HealthCheck is a dependency the service needs to do useful work. The backend checks
// PostgreSQL; the AI service has none.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
}

// handleHealth always answers {"status":"ok"} and touches no dependency, so a database
// outage never takes the backend out of rotation.
func (s *Server) handleHealth(c echo.Context) error {
	if err := c.JSON(http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to write health response: %w", err)
	}
	return nil
}

func (s *Server) handleLiveness(c echo.Context) error {
	response := map[string]any{
		"status":  "ok",
		"service": s.name,
		"uptime":  s.clock.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

// handleReadiness runs every check and reports each one under "checks". The first failing
// check is also named in "failed_check" and "error".
func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
	defer cancel()

	status := http.StatusOK
	response := map[string]any{"status": "ready"}
	results := make(map[string]string, len(s.healthChecks))

	for _, hc := range s.healthChecks {
		err := hc.Check(ctx)
		if err == nil {
			results[hc.Name] = "ok"
			continue
		}

		results[hc.Name] = err.Error()
		if status == http.StatusOK {
			status = http.StatusServiceUnavailable
			response["status"] = "unhealthy"
			response["failed_check"] = hc.Name
			response["error"] = err.Error()
		}
	}
	if len(results) > 0 {
		response["checks"] = results
	}

	if err := c.JSON(status, response); err != nil {
		return fmt.Errorf("failed to write readiness response: %w", err)
	}
	return nil
}

func (s *Server) handleVersion(c echo.Context) error {
	if err := c.JSON(http.StatusOK, version.For(s.name)); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
