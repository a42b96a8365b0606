// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package moderation screens comment text before it reaches the content
// store. A Classifier scores text for toxicity; the Gate turns that score
// into an allow, warn, or block decision.
package moderation

import (
	"context"
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// Categories reported by the lexicon classifier for any match.
const (
	CategoryOffensive      = "offensive-language"
	CategoryUnconstructive = "unconstructive"
)

// DefaultSuggestion is offered to the author whenever the lexicon flags text.
const DefaultSuggestion = "Consider rephrasing your comment constructively. " +
	"Focus on the code or the idea rather than the person, and explain what could be improved."

// ToxicityResult is the verdict of a single classification.
type ToxicityResult struct {
	IsToxic    bool     `json:"is_toxic"`
	Confidence float64  `json:"confidence"` // always within [0, 1]
	Categories []string `json:"categories"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Classifier scores text for toxicity. Implementations must be safe for
// concurrent use. Remote implementations may block on the network; the
// lexicon implementation never does.
type Classifier interface {
	Classify(ctx context.Context, text string) (*ToxicityResult, error)
}

// DefaultLexicon is the fixed list of flagged terms.
var DefaultLexicon = []string{
	"stupid",
	"idiot",
	"dumb",
	"hate",
	"terrible",
	"awful",
	"useless",
	"garbage",
	"trash",
	"moron",
}

// LexiconClassifier flags text containing any lexicon term as a
// case-insensitive substring. It holds no mutable state.
type LexiconClassifier struct {
	terms []string // case-folded, deduplicated
}

// NewLexiconClassifier builds a classifier over the given terms. Empty and
// duplicate terms (after case folding) are dropped. A nil lexicon selects
// DefaultLexicon.
func NewLexiconClassifier(lexicon []string) *LexiconClassifier {
	if lexicon == nil {
		lexicon = DefaultLexicon
	}

	seen := make(map[string]bool, len(lexicon))
	terms := make([]string, 0, len(lexicon))
	for _, term := range lexicon {
		folded := fold(strings.TrimSpace(term))
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		terms = append(terms, folded)
	}
	return &LexiconClassifier{terms: terms}
}

// Classify counts distinct lexicon terms found in text. Confidence is 0.1
// for clean text and min(0.4 + 0.3*matches, 0.95) otherwise.
func (c *LexiconClassifier) Classify(_ context.Context, text string) (*ToxicityResult, error) {
	return c.classify(text), nil
}

// Matches returns the lexicon terms found in text, in lexicon order.
func (c *LexiconClassifier) Matches(text string) []string {
	folded := fold(text)
	var found []string
	for _, term := range c.terms {
		if strings.Contains(folded, term) {
			found = append(found, term)
		}
	}
	return found
}

func (c *LexiconClassifier) classify(text string) *ToxicityResult {
	matches := len(c.Matches(text))
	if matches == 0 {
		return &ToxicityResult{
			IsToxic:    false,
			Confidence: 0.1,
			Categories: []string{},
		}
	}

	return &ToxicityResult{
		IsToxic:    true,
		Confidence: lexiconConfidence(matches),
		Categories: []string{CategoryOffensive, CategoryUnconstructive},
		Suggestion: DefaultSuggestion,
	}
}

// lexiconConfidence rounds to two decimals so 1 match is exactly 0.7.
// Unrounded, 0.4+0.3 is 0.7000000000000001, which would block instead of warn.
func lexiconConfidence(matches int) float64 {
	conf := math.Min(0.4+0.3*float64(matches), 0.95)
	return math.Round(conf*100) / 100
}

// fold applies Unicode case folding. A Caser carries state, so a fresh one
// is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// clamp01 bounds a score reported by an external model to [0, 1].
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
