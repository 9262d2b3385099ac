package sentiment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	defaultPositive = []string{
		"love", "amazing", "best", "fantastic", "wonderful", "great", "good", "happy", "like", "nice",
	}
	defaultNegative = []string{
		"hate", "terrible", "bad", "worst", "awful", "horrible", "stupid", "disappointing", "sad", "angry", "poor",
	}

	defaultLexicon = mustLexicon(defaultPositive, defaultNegative)
)

var errEmptyWord = errors.New("lexicon word must not be empty")

// Lexicon holds two disjoint sets of lowercase words.
type Lexicon struct {
	positive []string
	negative []string
}

// NewLexicon lowercases and deduplicates the given words. It rejects empty words and words
// present in both sets.
func NewLexicon(positive, negative []string) (Lexicon, error) {
	pos, err := normalize(positive)
	if err != nil {
		return Lexicon{}, fmt.Errorf("positive words: %w", err)
	}
	neg, err := normalize(negative)
	if err != nil {
		return Lexicon{}, fmt.Errorf("negative words: %w", err)
	}

	for _, w := range pos {
		if _, found := slices.BinarySearch(neg, w); found {
			return Lexicon{}, fmt.Errorf("word %q is both positive and negative", w)
		}
	}

	return Lexicon{positive: pos, negative: neg}, nil
}

// DefaultLexicon returns the built-in word lists.
func DefaultLexicon() Lexicon {
	return defaultLexicon
}

// Positive returns a copy of the positive words in sorted order.
func (l Lexicon) Positive() []string {
	return slices.Clone(l.positive)
}

// Negative returns a copy of the negative words in sorted order.
func (l Lexicon) Negative() []string {
	return slices.Clone(l.negative)
}

func normalize(words []string) ([]string, error) {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return nil, errEmptyWord
		}
		out = append(out, w)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func mustLexicon(positive, negative []string) Lexicon {
	l, err := NewLexicon(positive, negative)
	if err != nil {
		panic(err)
	}
	return l
}
