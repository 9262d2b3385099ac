package domain

import (
	"context"
	"encoding/json"
)

// SentimentRequest is the body accepted by both /api/sentiment endpoints.
// An absent text field decodes to the empty string.
type SentimentRequest struct {
	Text string `json:"text"`
}

// SentimentResponse is the AI service's answer.
type SentimentResponse struct {
	Label int     `json:"label"`
	Score float64 `json:"score"`
}

// SentimentAnalyzer forwards text to the AI service and returns its raw JSON body.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (json.RawMessage, error)
	URL() string
}

// SentimentOutcome is the result of a proxied sentiment call. Exactly one of Body or
// Error is set.
type SentimentOutcome struct {
	Body  json.RawMessage
	Error string
	AIURL string
}

// Failed reports whether the outcome carries an error.
func (o SentimentOutcome) Failed() bool {
	return o.Error != ""
}
