// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package analytics derives engagement statistics from a snapshot of posts.
// It never mutates its input and keeps no state.
package analytics

import (
	"sort"

	"devforum/internal/models"
)

// TopPostsLimit is how many posts the summary ranks.
const TopPostsLimit = 3

// InsightsSummary aggregates engagement over a set of posts.
type InsightsSummary struct {
	TotalPosts            int           `json:"total_posts"`
	TotalViews            int           `json:"total_views"`
	TotalUpvotes          int           `json:"total_upvotes"`
	TotalComments         int           `json:"total_comments"`
	TotalSaves            int           `json:"total_saves"`
	AverageEngagementRate float64       `json:"average_engagement_rate"`
	AverageTier           Tier          `json:"average_tier"`
	TopPosts              []models.Post `json:"top_posts"`
}

// ComputeInsights sums the posts' counters, averages their engagement rates,
// and ranks the most viewed posts. Ties in views keep input order.
func ComputeInsights(posts []models.Post) InsightsSummary {
	s := InsightsSummary{
		TotalPosts: len(posts),
		TopPosts:   []models.Post{},
	}

	var rateSum float64
	for i := range posts {
		p := &posts[i]
		s.TotalViews += p.Views
		s.TotalUpvotes += p.Votes
		s.TotalComments += p.CommentCount
		s.TotalSaves += p.Saves
		rateSum += p.EngagementRate
	}

	if len(posts) > 0 {
		s.AverageEngagementRate = rateSum / float64(len(posts))
	}
	s.AverageTier = TierFor(s.AverageEngagementRate)
	s.TopPosts = topByViews(posts, TopPostsLimit)
	return s
}

// topByViews returns up to n posts with the most views. The input slice is
// left untouched.
func topByViews(posts []models.Post, n int) []models.Post {
	ranked := make([]models.Post, len(posts))
	for i := range posts {
		ranked[i] = posts[i].Clone()
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
