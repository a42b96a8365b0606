// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"sort"
	"time"

	"devforum/internal/models"
)

// TrendWindow is the length of each window compared by growth.
const TrendWindow = 7 * 24 * time.Hour

// TrendingTopics groups posts by tag. Topics are ordered by post count, ties
// keeping the order in which the tag first appears among newest-first posts.
// A limit of zero or less returns every tag.
func (s *ContentStore) TrendingTopics(limit int) []models.TrendingTopic {
	return TopicsFor(s.Posts(), s.now(), limit)
}

// TopicsFor derives trending topics from a newest-first post snapshot.
// GrowthPercent compares posts created in the last TrendWindow with the
// window before it.
func TopicsFor(posts []models.Post, now time.Time, limit int) []models.TrendingTopic {
	type bucket struct {
		topic            models.TrendingTopic
		recent, previous int
	}

	recentStart := now.Add(-TrendWindow)
	previousStart := now.Add(-2 * TrendWindow)

	var order []string
	buckets := make(map[string]*bucket)
	for _, p := range posts {
		seen := make(map[string]bool, len(p.Tags))
		for _, tag := range p.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true

			b, ok := buckets[tag]
			if !ok {
				b = &bucket{topic: models.TrendingTopic{Tag: tag, Posts: []models.Post{}}}
				buckets[tag] = b
				order = append(order, tag)
			}
			b.topic.Count++
			b.topic.Posts = append(b.topic.Posts, p)

			switch {
			case !p.CreatedAt.Before(recentStart):
				b.recent++
			case !p.CreatedAt.Before(previousStart):
				b.previous++
			}
		}
	}

	topics := make([]models.TrendingTopic, 0, len(order))
	for _, tag := range order {
		b := buckets[tag]
		b.topic.GrowthPercent = growthPercent(b.recent, b.previous)
		topics = append(topics, b.topic)
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Count > topics[j].Count
	})

	if limit > 0 && len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}

// growthPercent is the percentage change from previous to recent. A tag
// with no history that appears this window counts as 100% growth.
func growthPercent(recent, previous int) float64 {
	if previous == 0 {
		if recent == 0 {
			return 0
		}
		return 100
	}
	return float64(recent-previous) / float64(previous) * 100
}
