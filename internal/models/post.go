// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the forum's domain types: posts, threaded comments,
// their embedded authors, and the derived trending view.
package models

import "time"

// PostType distinguishes the kinds of threads a post can open.
type PostType string

const (
	PostTypeQuestion   PostType = "question"
	PostTypeDiscussion PostType = "discussion"
	PostTypeCodeReview PostType = "code-review"
)

// Valid reports whether t is one of the known post types.
func (t PostType) Valid() bool {
	switch t {
	case PostTypeQuestion, PostTypeDiscussion, PostTypeCodeReview:
		return true
	}
	return false
}

// Difficulty is an optional skill-level hint attached to a post.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Author identifies who wrote a post or comment. It is embedded by value and
// has no identity of its own.
type Author struct {
	Name       string  `json:"name"`
	Avatar     *string `json:"avatar,omitempty"`
	Reputation int     `json:"reputation"`
}

// Post is a thread opener owned by the content store. CommentCount is a cache
// maintained by the store's comment creation; it is never set by callers.
//
// Saves and EngagementRate are supplied from outside (interaction tracking
// lives elsewhere) and are only read by the analytics aggregator.
type Post struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Content        string      `json:"content"`
	Code           *string     `json:"code,omitempty"`
	Language       *string     `json:"language,omitempty"`
	Author         Author      `json:"author"`
	Votes          int         `json:"votes"`
	CommentCount   int         `json:"comment_count"`
	Tags           []string    `json:"tags"`
	CreatedAt      time.Time   `json:"created_at"`
	Type           PostType    `json:"type"`
	Views          int         `json:"views"`
	Difficulty     *Difficulty `json:"difficulty,omitempty"`
	Saves          int         `json:"saves"`
	EngagementRate float64     `json:"engagement_rate"`
}

// HasTag reports whether the post carries the given tag.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy of the post that shares no slices or pointers with p.
func (p Post) Clone() Post {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	p.Code = clonePtr(p.Code)
	p.Language = clonePtr(p.Language)
	p.Difficulty = clonePtr(p.Difficulty)
	p.Author.Avatar = clonePtr(p.Author.Avatar)
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// PostDraft is the caller-supplied part of a post. The store stamps the rest.
type PostDraft struct {
	Title          string      `json:"title"`
	Content        string      `json:"content"`
	Code           *string     `json:"code,omitempty"`
	Language       *string     `json:"language,omitempty"`
	Author         Author      `json:"author"`
	Tags           []string    `json:"tags"`
	Type           PostType    `json:"type"`
	Difficulty     *Difficulty `json:"difficulty,omitempty"`
	Saves          int         `json:"saves"`
	EngagementRate float64     `json:"engagement_rate"`
}

// TrendingTopic is a read-only view over posts sharing a tag. It is
// recomputed on every read and never stored.
type TrendingTopic struct {
	Tag           string  `json:"tag"`
	Count         int     `json:"count"`
	GrowthPercent float64 `json:"growth_percent"`
	Posts         []Post  `json:"posts"`
}
