// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"devforum/internal/analytics"
)

// defaultTrendingLimit is how many topics /api/trending returns without a
// limit parameter.
const defaultTrendingLimit = 10

// Trending returns tag topics ranked by post count.
func (a *API) Trending(w http.ResponseWriter, r *http.Request) {
	limit := defaultTrendingLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Limit must be a non-negative integer.")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, a.store.TrendingTopics(limit))
}

// insightsView adds display colors to the summary.
type insightsView struct {
	analytics.InsightsSummary
	AverageTierColor string `json:"average_tier_color"`
}

// Insights returns the engagement summary over all posts.
func (a *API) Insights(w http.ResponseWriter, r *http.Request) {
	s := a.svc.Insights(r.Context())
	writeJSON(w, http.StatusOK, insightsView{
		InsightsSummary:  s,
		AverageTierColor: s.AverageTier.Color(),
	})
}
