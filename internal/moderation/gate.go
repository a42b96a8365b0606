// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Action is the gate's verdict for a piece of text.
type Action string

const (
	ActionAllow Action = "allow"
	ActionWarn  Action = "warn"
	ActionBlock Action = "block"
)

// Messages returned to the author alongside warn and block decisions.
const (
	RejectionMessage = "Your comment was not posted because it appears to break the community guidelines."
	AdvisoryMessage  = "Your comment was posted. Please keep the tone constructive and respectful."
)

// Thresholds controls where the gate draws its lines. Toxic results with
// confidence above Block are blocked; above Warn (up to and including Block)
// they are admitted with an advisory.
type Thresholds struct {
	Warn  float64
	Block float64
}

// DefaultThresholds matches the product policy: one flagged term warns,
// two or more block.
var DefaultThresholds = Thresholds{Warn: 0.4, Block: 0.7}

// Validate checks that both thresholds lie in [0, 1] and Warn < Block.
func (t Thresholds) Validate() error {
	if t.Warn < 0 || t.Warn > 1 || t.Block < 0 || t.Block > 1 {
		return fmt.Errorf("moderation: thresholds must be within [0, 1] (warn=%v, block=%v)", t.Warn, t.Block)
	}
	if t.Warn >= t.Block {
		return fmt.Errorf("moderation: warn threshold %v must be below block threshold %v", t.Warn, t.Block)
	}
	return nil
}

// Decision is the outcome of Gate.Moderate. Result is the classifier output
// the decision was derived from.
type Decision struct {
	Action  Action          `json:"action"`
	Result  *ToxicityResult `json:"result"`
	Message string          `json:"message,omitempty"`
}

// Admitted reports whether the text may be stored. Warned text is admitted.
func (d *Decision) Admitted() bool {
	return d.Action != ActionBlock
}

// Gate applies the allow/warn/block policy on top of a Classifier. It keeps
// no state between calls apart from the in-flight counter behind Checking.
type Gate struct {
	classifier Classifier
	thresholds Thresholds
	inflight   atomic.Int64
}

// NewGate creates a gate over the given classifier.
func NewGate(classifier Classifier, thresholds Thresholds) (*Gate, error) {
	if classifier == nil {
		return nil, fmt.Errorf("moderation: classifier is required")
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Gate{classifier: classifier, thresholds: thresholds}, nil
}

// Moderate classifies text and returns the policy decision. Classifier
// errors are returned as-is; no decision is invented for them.
func (g *Gate) Moderate(ctx context.Context, text string) (*Decision, error) {
	g.inflight.Add(1)
	defer g.inflight.Add(-1)

	result, err := g.classifier.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("moderation classify: %w", err)
	}

	d := g.decide(result)
	switch d.Action {
	case ActionBlock:
		slog.Warn("comment blocked by moderation",
			"confidence", result.Confidence,
			"categories", result.Categories,
		)
	case ActionWarn:
		slog.Info("comment admitted with advisory",
			"confidence", result.Confidence,
			"categories", result.Categories,
		)
	}
	return d, nil
}

// Checking reports whether a classification is currently in flight. It is a
// UI busy hint only.
func (g *Gate) Checking() bool {
	return g.inflight.Load() > 0
}

// Thresholds returns the thresholds the gate was built with.
func (g *Gate) Thresholds() Thresholds {
	return g.thresholds
}

func (g *Gate) decide(r *ToxicityResult) *Decision {
	switch {
	case r.IsToxic && r.Confidence > g.thresholds.Block:
		msg := r.Suggestion
		if msg == "" {
			msg = RejectionMessage
		}
		return &Decision{Action: ActionBlock, Result: r, Message: msg}
	case r.IsToxic && r.Confidence > g.thresholds.Warn:
		return &Decision{Action: ActionWarn, Result: r, Message: AdvisoryMessage}
	default:
		return &Decision{Action: ActionAllow, Result: r}
	}
}
