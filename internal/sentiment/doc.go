// Package sentiment implements the lexicon-based sentiment scorer.
//
// Scoring counts distinct positive and negative lexicon words contained in the lowercased
// text (substring containment, so "sadly" hits "sad") and returns a Laplace-smoothed ratio.
// Lexicons are immutable once built; a Scorer is safe for concurrent use.
package sentiment
