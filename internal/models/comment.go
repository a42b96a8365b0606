// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Comment is either a top-level comment on a post or a reply nested in
// another comment's Replies. Replies keep insertion order.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Votes     int       `json:"votes"`
	Replies   []Comment `json:"replies"`
}

// CommentDraft is the caller-supplied part of a comment. ParentID is empty
// for a top-level comment.
type CommentDraft struct {
	PostID   string `json:"post_id"`
	ParentID string `json:"parent_id,omitempty"`
	Author   Author `json:"author"`
	Content  string `json:"content"`
}

// TreeSize returns the number of comments in this subtree, including c.
func (c *Comment) TreeSize() int {
	n := 1
	for i := range c.Replies {
		n += c.Replies[i].TreeSize()
	}
	return n
}

// Clone returns a deep copy of the comment and its replies.
func (c Comment) Clone() Comment {
	if c.Replies == nil {
		return c
	}
	replies := make([]Comment, len(c.Replies))
	for i := range c.Replies {
		replies[i] = c.Replies[i].Clone()
	}
	c.Replies = replies
	return c
}
