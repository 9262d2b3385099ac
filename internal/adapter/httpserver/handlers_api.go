package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// sentimentFailure is the fail-soft body of the proxied sentiment endpoint.
type sentimentFailure struct {
	Error string `json:"error"`
	AIURL string `json:"ai_url"`
}

func (s *Server) registerBackendRoutes(api *echo.Group) {
	api.GET("/hello", s.handleHello)
	api.GET("/db-time", s.handleDBTime)
	api.POST("/sentiment", s.handleProxySentiment)
}

func (s *Server) handleHello(c echo.Context) error {
	if err := c.JSON(http.StatusOK, s.backend.Hello()); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleDBTime answers 200 whether or not the database query succeeded.
func (s *Server) handleDBTime(c echo.Context) error {
	outcome := s.backend.DBTime(c.Request().Context())

	if err := c.JSON(http.StatusOK, outcome); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleProxySentiment relays the AI service's body verbatim, or answers 200 with the
// error and the AI URL when the call failed.
func (s *Server) handleProxySentiment(c echo.Context) error {
	outcome := s.backend.Sentiment(c.Request().Context(), readText(c))

	var err error
	if outcome.Failed() {
		err = c.JSON(http.StatusOK, sentimentFailure{Error: outcome.Error, AIURL: outcome.AIURL})
	} else {
		err = c.JSONBlob(http.StatusOK, outcome.Body)
	}
	if err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
