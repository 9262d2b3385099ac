package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// SentimentMetrics tracks the AI service's scoring results.
type SentimentMetrics struct {
	ScoredTotal *prometheus.CounterVec
	Scores      prometheus.Histogram
}

// NewSentimentMetrics creates and registers scoring metrics on the given registry.
func NewSentimentMetrics(reg prometheus.Registerer) *SentimentMetrics {
	m := &SentimentMetrics{
		ScoredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sentiment",
			Name:      "scored_total",
			Help:      "Total number of texts scored, by label.",
		}, []string{"label"}),
		Scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sentiment",
			Name:      "score",
			Help:      "Distribution of sentiment scores.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}

	reg.MustRegister(m.ScoredTotal, m.Scores)
	return m
}

// Observe records one scored text.
func (m *SentimentMetrics) Observe(label int, score float64) {
	m.ScoredTotal.WithLabelValues(strconv.Itoa(label)).Inc()
	m.Scores.Observe(score)
}
