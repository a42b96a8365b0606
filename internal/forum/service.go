// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forum ties the moderation gate to the content store. Every comment
// reaching the store from the outside passes through Service.SubmitComment.
package forum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"devforum/internal/analytics"
	"devforum/internal/models"
	"devforum/internal/moderation"
	"devforum/internal/store"
)

var (
	// ErrBlocked is returned when the gate rejects a comment.
	ErrBlocked = errors.New("comment blocked by moderation")

	// ErrPostNotFound is returned when a comment targets an unknown post.
	ErrPostNotFound = errors.New("post not found")
)

// InsightsCache is the subset of the Valkey insights cache the service needs.
type InsightsCache interface {
	Get(ctx context.Context, revision uint64) (*analytics.InsightsSummary, bool)
	Set(ctx context.Context, revision uint64, s *analytics.InsightsSummary)
}

// Submission is the result of a comment submission. Comment is nil when the
// decision is a block.
type Submission struct {
	Decision *moderation.Decision `json:"decision"`
	Comment  *models.Comment      `json:"comment,omitempty"`
}

// Service is the forum's write path and insights reader.
type Service struct {
	store *store.ContentStore
	gate  *moderation.Gate
	cache InsightsCache
}

// NewService creates a service. cache may be nil, in which case insights are
// computed on each call.
func NewService(s *store.ContentStore, gate *moderation.Gate, cache InsightsCache) *Service {
	return &Service{store: s, gate: gate, cache: cache}
}

// Store returns the underlying content store for read-only handlers.
func (svc *Service) Store() *store.ContentStore {
	return svc.store
}

// Gate returns the moderation gate.
func (svc *Service) Gate() *moderation.Gate {
	return svc.gate
}

// SubmitComment moderates the draft and stores it unless it is blocked. The
// store is not touched when classification fails or the gate blocks.
func (svc *Service) SubmitComment(ctx context.Context, d models.CommentDraft) (*Submission, error) {
	if !svc.store.HasPost(d.PostID) {
		return nil, ErrPostNotFound
	}

	decision, err := svc.gate.Moderate(ctx, d.Content)
	if err != nil {
		return nil, fmt.Errorf("submit comment on %s: %w", d.PostID, err)
	}

	if !decision.Admitted() {
		return &Submission{Decision: decision}, ErrBlocked
	}

	c := svc.store.AddComment(d)
	slog.Info("comment added",
		"post_id", d.PostID,
		"comment_id", c.ID,
		"action", decision.Action,
		"reply", d.ParentID != "",
	)
	return &Submission{Decision: decision, Comment: &c}, nil
}

// Insights summarizes the current posts. The summary is cached per store
// revision, so any mutation produces a fresh computation.
func (svc *Service) Insights(ctx context.Context) analytics.InsightsSummary {
	rev := svc.store.Revision()
	if svc.cache != nil {
		if s, ok := svc.cache.Get(ctx, rev); ok {
			return *s
		}
	}

	s := analytics.ComputeInsights(svc.store.Posts())
	if svc.cache != nil {
		svc.cache.Set(ctx, rev, &s)
	}
	return s
}
