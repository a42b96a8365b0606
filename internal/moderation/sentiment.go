// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package moderation

import (
	"context"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

// CategoryNegativeTone is reported by the sentiment classifier.
const CategoryNegativeTone = "negative-tone"

// DefaultNegativeCutoff is the VADER compound score at or below which text is
// treated as hostile.
const DefaultNegativeCutoff = -0.5

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]*>`)
)

// SentimentClassifier scores the tone of text with VADER. It needs no
// network access and tolerates markdown input.
type SentimentClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
	cutoff   float64
}

// NewSentimentClassifier creates a VADER-backed classifier. A cutoff of 0
// selects DefaultNegativeCutoff.
func NewSentimentClassifier(cutoff float64) *SentimentClassifier {
	if cutoff == 0 {
		cutoff = DefaultNegativeCutoff
	}
	return &SentimentClassifier{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		cutoff:   cutoff,
	}
}

// Classify flags text whose compound polarity is at or below the cutoff.
// Confidence is the magnitude of the compound score.
func (c *SentimentClassifier) Classify(_ context.Context, text string) (*ToxicityResult, error) {
	score := c.analyzer.PolarityScores(PlainText(text)).Compound

	if score > c.cutoff {
		return &ToxicityResult{Confidence: 0.1, Categories: []string{}}, nil
	}
	return &ToxicityResult{
		IsToxic:    true,
		Confidence: clamp01(math.Abs(score)),
		Categories: []string{CategoryNegativeTone},
		Suggestion: DefaultSuggestion,
	}, nil
}

// PlainText renders markdown, drops the resulting HTML tags and links, and
// collapses whitespace.
func PlainText(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")

	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	text := html.UnescapeString(htmlTag.ReplaceAllString(string(rendered), " "))
	text = bareURL.ReplaceAllString(text, "")

	return strings.Join(strings.Fields(text), " ")
}
