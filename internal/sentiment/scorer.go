package sentiment

import (
	"strings"

	"github.com/pscheid92/sentidemo/internal/domain"
)

const (
	// NeutralScore is returned when the text contains no lexicon word.
	NeutralScore = 0.5

	positiveThreshold = 0.5
)

// Scorer maps text to a score in [0, 1] using a fixed lexicon.
type Scorer struct {
	lexicon Lexicon
}

// NewScorer creates a scorer over the given lexicon.
func NewScorer(lexicon Lexicon) *Scorer {
	return &Scorer{lexicon: lexicon}
}

// NewDefaultScorer creates a scorer over the built-in lexicon.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultLexicon())
}

// Score returns (pos+1)/(pos+neg+2) clamped to [0, 1], or NeutralScore when no lexicon
// word occurs in the text.
func (s *Scorer) Score(text string) float64 {
	t := strings.ToLower(text)
	pos := countContained(t, s.lexicon.positive)
	neg := countContained(t, s.lexicon.negative)

	total := pos + neg
	if total == 0 {
		return NeutralScore
	}

	score := float64(pos+1) / float64(total+2)
	return min(1.0, max(0.0, score))
}

// Analyze scores the text and derives its label.
func (s *Scorer) Analyze(text string) domain.SentimentResponse {
	score := s.Score(text)
	return domain.SentimentResponse{Label: Label(score), Score: score}
}

// Label is 1 for scores at or above the neutral point, 0 otherwise.
func Label(score float64) int {
	if score >= positiveThreshold {
		return 1
	}
	return 0
}

func countContained(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
