// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store owns the forum's in-memory collections: posts, threaded
// comments, and the bookmark and star sets. Every collection has its own
// lock so unrelated operations never serialize on each other, and no
// operation holds two collection locks at once.
package store

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"devforum/internal/models"
)

// ContentStore handles all post, comment, bookmark, and star operations.
// It is safe for concurrent use.
type ContentStore struct {
	now   func() time.Time
	newID func() string

	// revision increases on every mutation; readers use it to key caches.
	revision atomic.Uint64

	postsMu   sync.RWMutex
	posts     []*models.Post // insertion order, oldest first
	postsByID map[string]*models.Post

	commentsMu    sync.RWMutex
	comments      []*models.Comment // top-level, insertion order, oldest first
	commentsByID  map[string]*models.Comment
	commentsTotal int

	bookmarksMu sync.RWMutex
	bookmarks   map[string]struct{}

	starsMu sync.RWMutex
	stars   map[string]struct{}
}

// Option customizes a ContentStore.
type Option func(*ContentStore)

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ContentStore) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *ContentStore) { s.newID = newID }
}

// NewContentStore creates an empty store.
func NewContentStore(opts ...Option) *ContentStore {
	s := &ContentStore{
		now:          time.Now,
		newID:        newUUIDv7,
		postsByID:    make(map[string]*models.Post),
		commentsByID: make(map[string]*models.Comment),
		bookmarks:    make(map[string]struct{}),
		stars:        make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newUUIDv7 returns a time-ordered UUID. Within a process successive values
// are strictly increasing.
func newUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Revision returns the mutation counter. It changes whenever any collection
// changes.
func (s *ContentStore) Revision() uint64 {
	return s.revision.Load()
}

// --- Posts ---

// CreatePost stamps a new post from the draft and places it first in the
// newest-first ordering. Posts are not moderated.
func (s *ContentStore) CreatePost(d models.PostDraft) models.Post {
	p := &models.Post{
		ID:             s.newID(),
		Title:          d.Title,
		Content:        d.Content,
		Code:           d.Code,
		Language:       d.Language,
		Author:         d.Author,
		Tags:           append([]string(nil), d.Tags...),
		CreatedAt:      s.now(),
		Type:           d.Type,
		Difficulty:     d.Difficulty,
		Saves:          d.Saves,
		EngagementRate: d.EngagementRate,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	// Detach the optional fields from the caller's draft.
	*p = p.Clone()

	s.postsMu.Lock()
	s.posts = append(s.posts, p)
	s.postsByID[p.ID] = p
	out := p.Clone()
	s.postsMu.Unlock()

	s.revision.Add(1)
	slog.Debug("post created", "post_id", out.ID, "type", out.Type, "tags", out.Tags)
	return out
}

// Posts returns a snapshot of all posts, newest first.
func (s *ContentStore) Posts() []models.Post {
	s.postsMu.RLock()
	defer s.postsMu.RUnlock()

	out := make([]models.Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		out = append(out, s.posts[i].Clone())
	}
	return out
}

// FindPost returns a copy of the post with the given id. Returns nil if not
// found.
func (s *ContentStore) FindPost(id string) *models.Post {
	s.postsMu.RLock()
	defer s.postsMu.RUnlock()

	p, ok := s.postsByID[id]
	if !ok {
		return nil
	}
	cp := p.Clone()
	return &cp
}

// HasPost reports whether a post with the given id exists.
func (s *ContentStore) HasPost(id string) bool {
	s.postsMu.RLock()
	defer s.postsMu.RUnlock()
	_, ok := s.postsByID[id]
	return ok
}

// CountPosts returns the number of posts in the store.
func (s *ContentStore) CountPosts() int {
	s.postsMu.RLock()
	defer s.postsMu.RUnlock()
	return len(s.posts)
}

// incrementCommentCount bumps a post's comment cache. Unknown posts are
// ignored so stale references from the UI never fail a comment.
func (s *ContentStore) incrementCommentCount(postID string) {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()

	p, ok := s.postsByID[postID]
	if !ok {
		slog.Debug("comment count increment skipped, post not found", "post_id", postID)
		return
	}
	p.CommentCount++
}

// --- Comments ---

// AddComment stores a comment. Callers are expected to have run the text
// through the moderation gate already; the store does not moderate.
//
// With a ParentID the comment is appended to that top-level comment's
// replies. Only top-level comments of the same post are searched; an unknown
// parent (a reply, or a comment on another post) places the comment at the
// top level instead. Without a
// ParentID the comment becomes the newest top-level comment. Either way the
// post's comment count grows by one.
func (s *ContentStore) AddComment(d models.CommentDraft) models.Comment {
	c := models.Comment{
		ID:        s.newID(),
		PostID:    d.PostID,
		Author:    d.Author,
		Content:   d.Content,
		CreatedAt: s.now(),
		Replies:   []models.Comment{},
	}

	s.commentsMu.Lock()
	parent, nested := s.commentsByID[d.ParentID]
	nested = nested && d.ParentID != "" && parent.PostID == d.PostID
	if nested {
		parent.Replies = append(parent.Replies, c)
	} else {
		top := c
		s.comments = append(s.comments, &top)
		s.commentsByID[top.ID] = &top
	}
	s.commentsTotal++
	s.commentsMu.Unlock()

	if d.ParentID != "" && !nested {
		slog.Debug("parent comment not found among the post's top-level comments, placing at top level",
			"post_id", d.PostID,
			"parent_id", d.ParentID,
		)
	}

	s.incrementCommentCount(d.PostID)
	s.revision.Add(1)
	return c.Clone()
}

// CommentsForPost returns the post's top-level comments, newest first, with
// replies nested in insertion order.
func (s *ContentStore) CommentsForPost(postID string) []models.Comment {
	s.commentsMu.RLock()
	defer s.commentsMu.RUnlock()

	out := []models.Comment{}
	for i := len(s.comments) - 1; i >= 0; i-- {
		if s.comments[i].PostID == postID {
			out = append(out, s.comments[i].Clone())
		}
	}
	return out
}

// CountComments returns the number of comments and replies stored.
func (s *ContentStore) CountComments() int {
	s.commentsMu.RLock()
	defer s.commentsMu.RUnlock()
	return s.commentsTotal
}

// --- Bookmarks & stars ---

// ToggleBookmark flips the bookmark for a post and returns whether it is now
// bookmarked. Unknown posts are ignored and report false.
func (s *ContentStore) ToggleBookmark(postID string) bool {
	return s.toggle(&s.bookmarksMu, s.bookmarks, postID, "bookmark")
}

// ToggleStar flips the star for a post and returns whether it is now
// starred. Unknown posts are ignored and report false.
func (s *ContentStore) ToggleStar(postID string) bool {
	return s.toggle(&s.starsMu, s.stars, postID, "star")
}

// IsBookmarked reports bookmark membership.
func (s *ContentStore) IsBookmarked(postID string) bool {
	return contains(&s.bookmarksMu, s.bookmarks, postID)
}

// IsStarred reports star membership.
func (s *ContentStore) IsStarred(postID string) bool {
	return contains(&s.starsMu, s.stars, postID)
}

// Bookmarks returns the bookmarked posts, newest first.
func (s *ContentStore) Bookmarks() []models.Post {
	return s.postsIn(members(&s.bookmarksMu, s.bookmarks))
}

// Stars returns the starred posts, newest first.
func (s *ContentStore) Stars() []models.Post {
	return s.postsIn(members(&s.starsMu, s.stars))
}

func (s *ContentStore) toggle(mu *sync.RWMutex, set map[string]struct{}, postID, kind string) bool {
	// Posts are never removed, so this check stays valid after the lock is released.
	if !s.HasPost(postID) {
		slog.Debug(kind+" toggle skipped, post not found", "post_id", postID)
		return false
	}

	mu.Lock()
	_, on := set[postID]
	if on {
		delete(set, postID)
	} else {
		set[postID] = struct{}{}
	}
	mu.Unlock()

	s.revision.Add(1)
	return !on
}

func (s *ContentStore) postsIn(ids map[string]struct{}) []models.Post {
	out := []models.Post{}
	if len(ids) == 0 {
		return out
	}

	s.postsMu.RLock()
	defer s.postsMu.RUnlock()
	for i := len(s.posts) - 1; i >= 0; i-- {
		if _, ok := ids[s.posts[i].ID]; ok {
			out = append(out, s.posts[i].Clone())
		}
	}
	return out
}

func contains(mu *sync.RWMutex, set map[string]struct{}, id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := set[id]
	return ok
}

func members(mu *sync.RWMutex, set map[string]struct{}) map[string]struct{} {
	mu.RLock()
	defer mu.RUnlock()

	out := make(map[string]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}
