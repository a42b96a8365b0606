// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"log/slog"

	"devforum/internal/models"
)

// Seed populates an empty store with a handful of development posts and a
// short comment thread. It is a no-op if the store already holds posts.
func Seed(s *ContentStore) {
	if s.CountPosts() > 0 {
		slog.Info("store already seeded, skipping")
		return
	}

	goLang, tsLang := "go", "typescript"
	beginner, advanced := models.DifficultyBeginner, models.DifficultyAdvanced
	snippet := "func worker(jobs <-chan int) {\n\tfor j := range jobs {\n\t\tprocess(j)\n\t}\n}"

	drafts := []models.PostDraft{
		{
			Title:          "How do I stop a worker pool cleanly?",
			Content:        "My workers keep running after main returns. What is the idiomatic shutdown?",
			Code:           &snippet,
			Language:       &goLang,
			Author:         models.Author{Name: "ana", Reputation: 120},
			Tags:           []string{"go", "concurrency"},
			Type:           models.PostTypeQuestion,
			Difficulty:     &beginner,
			Saves:          14,
			EngagementRate: 72.5,
		},
		{
			Title:          "Generics vs interfaces for collection helpers",
			Content:        "When do type parameters actually pay off over a small interface?",
			Author:         models.Author{Name: "marek", Reputation: 860},
			Tags:           []string{"go", "generics"},
			Type:           models.PostTypeDiscussion,
			Saves:          31,
			EngagementRate: 84.0,
		},
		{
			Title:          "Review my discriminated union reducer",
			Content:        "Looking for feedback on exhaustiveness checks.",
			Language:       &tsLang,
			Author:         models.Author{Name: "jo", Reputation: 45},
			Tags:           []string{"typescript", "code-review"},
			Type:           models.PostTypeCodeReview,
			Difficulty:     &advanced,
			Saves:          3,
			EngagementRate: 38.0,
		},
	}

	var first models.Post
	for i, d := range drafts {
		p := s.CreatePost(d)
		if i == 0 {
			first = p
		}
	}

	top := s.AddComment(models.CommentDraft{
		PostID:  first.ID,
		Author:  models.Author{Name: "lee", Reputation: 300},
		Content: "Close the jobs channel and wait on a sync.WaitGroup.",
	})
	s.AddComment(models.CommentDraft{
		PostID:   first.ID,
		ParentID: top.ID,
		Author:   models.Author{Name: "ana", Reputation: 120},
		Content:  "That fixed it, thanks!",
	})

	slog.Info("store seeded with development content",
		"posts", s.CountPosts(),
		"comments", s.CountComments(),
	)
}
