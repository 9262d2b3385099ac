// Package aiclient calls the AI service's sentiment endpoint over HTTP.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pscheid92/sentidemo/internal/domain"
	"github.com/pscheid92/sentidemo/internal/platform/correlation"
)

const maxResponseBytes = 1 << 20

var errInvalidJSON = errors.New("ai service returned a body that is not valid JSON")

// Client posts text to a fixed sentiment URL. It is safe for concurrent use.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a client for the given sentiment URL. timeout bounds the whole exchange,
// including reading the response body.
func New(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the sentiment endpoint this client targets.
func (c *Client) URL() string {
	return c.url
}

// Analyze posts {"text": text} and returns the response body unchanged. Transport errors,
// timeouts, non-2xx statuses, and non-JSON bodies are all returned as errors.
func (c *Client) Analyze(ctx context.Context, text string) (json.RawMessage, error) {
	payload, err := json.Marshal(domain.SentimentRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sentiment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create sentiment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	correlation.Propagate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ai service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ai service returned status %d for url %s", resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read ai service response: %w", err)
	}
	if !json.Valid(body) {
		return nil, errInvalidJSON
	}

	return json.RawMessage(body), nil
}

var _ domain.SentimentAnalyzer = (*Client)(nil)
