// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package analytics

// Tier buckets an engagement rate for display.
type Tier string

const (
	TierHigh Tier = "high"
	TierGood Tier = "good"
	TierFair Tier = "fair"
	TierLow  Tier = "low"
)

// TierFor maps a rate to its tier: >= 80 high, >= 60 good, >= 40 fair,
// anything else (negative, NaN) low.
func TierFor(rate float64) Tier {
	switch {
	case rate >= 80:
		return TierHigh
	case rate >= 60:
		return TierGood
	case rate >= 40:
		return TierFair
	default:
		return TierLow
	}
}

// Color returns the display color associated with the tier.
func (t Tier) Color() string {
	switch t {
	case TierHigh:
		return "green"
	case TierGood:
		return "blue"
	case TierFair:
		return "yellow"
	default:
		return "red"
	}
}
