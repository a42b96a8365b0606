// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package moderation

import "fmt"

// Classifier names accepted by NewClassifier.
const (
	ClassifierLexicon   = "lexicon"
	ClassifierSentiment = "sentiment"
	ClassifierOpenAI    = "openai"
)

// ClassifierConfig selects and configures a classifier implementation.
type ClassifierConfig struct {
	Name            string   // "lexicon" (default), "sentiment", "openai"
	Lexicon         []string // nil selects DefaultLexicon
	SentimentCutoff float64
	OpenAIKey       string
	OpenAIBaseURL   string
	// Fallback wraps remote classifiers so the lexicon answers when the
	// remote service fails.
	Fallback bool
}

// NewClassifier builds the classifier named in cfg.
func NewClassifier(cfg ClassifierConfig) (Classifier, error) {
	switch cfg.Name {
	case "", ClassifierLexicon:
		return NewLexiconClassifier(cfg.Lexicon), nil
	case ClassifierSentiment:
		return NewSentimentClassifier(cfg.SentimentCutoff), nil
	case ClassifierOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("moderation: classifier %q requires an API key", cfg.Name)
		}
		remote := NewOpenAIClassifier(cfg.OpenAIKey, cfg.OpenAIBaseURL)
		if cfg.Fallback {
			return NewFallbackClassifier(remote, NewLexiconClassifier(cfg.Lexicon)), nil
		}
		return remote, nil
	default:
		return nil, fmt.Errorf("moderation: unknown classifier %q", cfg.Name)
	}
}
