package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerSentimentRoutes(api *echo.Group) {
	api.POST("/sentiment", s.handleScoreSentiment)
}

// handleScoreSentiment scores the request text. Every input, including an empty or
// malformed body, yields a 200 with a label and score.
func (s *Server) handleScoreSentiment(c echo.Context) error {
	text := readText(c)
	result := s.scorer.Analyze(text)

	if s.sentimentMetrics != nil {
		s.sentimentMetrics.Observe(result.Label, result.Score)
	}
	slog.DebugContext(c.Request().Context(), "Scored text", "length", len(text), "label", result.Label, "score", result.Score)

	if err := c.JSON(http.StatusOK, result); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
