// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package moderation

import (
	"context"
	"fmt"
	"log/slog"
)

// FallbackClassifier asks the primary classifier first and switches to the
// secondary when the primary fails (network error, auth error, outage).
type FallbackClassifier struct {
	primary   Classifier
	secondary Classifier
}

// NewFallbackClassifier chains two classifiers.
func NewFallbackClassifier(primary, secondary Classifier) *FallbackClassifier {
	return &FallbackClassifier{primary: primary, secondary: secondary}
}

// Classify asks the primary first and falls back to the secondary on error.
// A cancelled ctx never falls back.
func (f *FallbackClassifier) Classify(ctx context.Context, text string) (*ToxicityResult, error) {
	result, err := f.primary.Classify(ctx, text)
	if err == nil {
		return result, nil
	}

	// A cancelled caller should not trigger the fallback.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	slog.Warn("primary classifier failed, using fallback", "error", err)

	result, fbErr := f.secondary.Classify(ctx, text)
	if fbErr != nil {
		return nil, fmt.Errorf("fallback classifier: %w (primary: %v)", fbErr, err)
	}
	return result, nil
}
