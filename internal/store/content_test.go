// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"devforum/internal/models"
)

// newTestStore returns a store with a fixed clock and sequential ids so
// assertions can name exact values.
func newTestStore(t *testing.T) *ContentStore {
	t.Helper()
	var n int
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewContentStore(
		WithClock(func() time.Time { return clock }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func testDraft(title string, tags ...string) models.PostDraft {
	return models.PostDraft{
		Title:   title,
		Content: "body of " + title,
		Author:  models.Author{Name: "tester", Reputation: 10},
		Tags:    tags,
		Type:    models.PostTypeDiscussion,
	}
}

func TestCreatePost(t *testing.T) {
	s := newTestStore(t)

	p := s.CreatePost(testDraft("First", "go"))

	if p.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", p.ID)
	}
	if p.Votes != 0 || p.CommentCount != 0 || p.Views != 0 {
		t.Errorf("counters = votes %d comments %d views %d, want all 0", p.Votes, p.CommentCount, p.Views)
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped")
	}
	if p.Title != "First" || p.Author.Name != "tester" {
		t.Errorf("draft fields not copied: %+v", p)
	}

	// A fresh post has no comments.
	if got := s.CommentsForPost(p.ID); len(got) != 0 {
		t.Errorf("CommentsForPost = %d comments, want 0", len(got))
	}
}

// TestCreatePostNewestFirst verifies insertion order is exposed newest first.
func TestCreatePostNewestFirst(t *testing.T) {
	s := newTestStore(t)
	a := s.CreatePost(testDraft("a"))
	b := s.CreatePost(testDraft("b"))
	c := s.CreatePost(testDraft("c"))

	posts := s.Posts()
	if len(posts) != 3 {
		t.Fatalf("len(Posts) = %d, want 3", len(posts))
	}
	want := []string{c.ID, b.ID, a.ID}
	for i, id := range want {
		if posts[i].ID != id {
			t.Errorf("Posts[%d].ID = %q, want %q", i, posts[i].ID, id)
		}
	}
}

func TestCreatePostCopiesTags(t *testing.T) {
	s := newTestStore(t)
	tags := []string{"go"}
	p := s.CreatePost(testDraft("t", tags...))

	tags[0] = "mutated"
	p.Tags[0] = "also mutated"

	stored := s.FindPost(p.ID)
	if stored.Tags[0] != "go" {
		t.Errorf("stored tag = %q, want go", stored.Tags[0])
	}
}

func TestCreatePostNilTags(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(models.PostDraft{Title: "untagged"})
	if p.Tags == nil {
		t.Error("Tags should be an empty slice, not nil")
	}
}

func TestDefaultIDsAreUniqueAndOrdered(t *testing.T) {
	s := NewContentStore()
	prev := ""
	for i := 0; i < 100; i++ {
		p := s.CreatePost(testDraft("p"))
		if p.ID <= prev {
			t.Fatalf("id %q not greater than previous %q", p.ID, prev)
		}
		prev = p.ID
	}
}

func TestFindPost(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(testDraft("find me"))

	if got := s.FindPost(p.ID); got == nil || got.Title != "find me" {
		t.Errorf("FindPost = %+v, want the created post", got)
	}
	if got := s.FindPost("missing"); got != nil {
		t.Errorf("FindPost(missing) = %+v, want nil", got)
	}
}

func TestAddTopLevelComment(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(testDraft("post"))

	first := s.AddComment(models.CommentDraft{PostID: p.ID, Content: "hello"})
	second := s.AddComment(models.CommentDraft{PostID: p.ID, Content: "world"})

	if first.Votes != 0 || first.CreatedAt.IsZero() || first.ID == "" {
		t.Errorf("comment not stamped: %+v", first)
	}

	if got := s.FindPost(p.ID).CommentCount; got != 2 {
		t.Errorf("CommentCount = %d, want 2", got)
	}

	comments := s.CommentsForPost(p.ID)
	if len(comments) != 2 {
		t.Fatalf("len(CommentsForPost) = %d, want 2", len(comments))
	}
	if comments[0].ID != second.ID || comments[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first [%s %s]",
			comments[0].ID, comments[1].ID, second.ID, first.ID)
	}
}

func TestAddReply(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(testDraft("post"))
	parent := s.AddComment(models.CommentDraft{PostID: p.ID, Content: "parent"})

	r1 := s.AddComment(models.CommentDraft{PostID: p.ID, ParentID: parent.ID, Content: "r1"})
	r2 := s.AddComment(models.CommentDraft{PostID: p.ID, ParentID: parent.ID, Content: "r2"})

	if got := s.FindPost(p.ID).CommentCount; got != 3 {
		t.Errorf("CommentCount = %d, want 3", got)
	}

	comments := s.CommentsForPost(p.ID)
	if len(comments) != 1 {
		t.Fatalf("replies must not be flattened: got %d top-level comments, want 1", len(comments))
	}
	replies := comments[0].Replies
	if len(replies) != 2 || replies[0].ID != r1.ID || replies[1].ID != r2.ID {
		t.Errorf("replies = %+v, want [r1 r2] in insertion order", replies)
	}
}

// TestReplyToReplyPlacedTopLevel pins the shallow parent lookup: a reply's
// id is not a valid parent, so the comment lands at the top level.
func TestReplyToReplyPlacedTopLevel(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(testDraft("post"))
	parent := s.AddComment(models.CommentDraft{PostID: p.ID, Content: "parent"})
	reply := s.AddComment(models.CommentDraft{PostID: p.ID, ParentID: parent.ID, Content: "reply"})

	nested := s.AddComment(models.CommentDraft{PostID: p.ID, ParentID: reply.ID, Content: "nested"})

	comments := s.CommentsForPost(p.ID)
	if len(comments) != 2 {
		t.Fatalf("len(CommentsForPost) = %d, want 2", len(comments))
	}
	if comments[0].ID != nested.ID {
		t.Errorf("newest top-level = %q, want %q", comments[0].ID, nested.ID)
	}
	if len(comments[1].Replies) != 1 || len(comments[1].Replies[0].Replies) != 0 {
		t.Error("reply tree should be unchanged")
	}
	if got := s.FindPost(p.ID).CommentCount; got != 3 {
		t.Errorf("CommentCount = %d, want 3", got)
	}
}

// TestAddCommentUnknownPost verifies the count increment is skipped, not fatal.
func TestAddCommentUnknownPost(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(testDraft("post"))

	c := s.AddComment(models.CommentDraft{PostID: "ghost", Content: "orphan"})
	if c.ID == "" {
		t.Error("comment should still be created")
	}
	if got := s.FindPost(p.ID).CommentCount; got != 0 {
		t.Errorf("unrelated CommentCount = %d, want 0", got)
	}
	if got := s.CommentsForPost("ghost"); len(got) != 1 {
		t.Errorf("CommentsForPost(ghost) = %d, want 1", len(got))
	}
}

func TestCommentsForPostFiltersByPost(t *testing.T) {
	s := newTestStore(t)
	a := s.CreatePost(testDraft("a"))
	b := s.CreatePost(testDraft("b"))
	s.AddComment(models.CommentDraft{PostID: a.ID, Content: "on a"})
	s.AddComment(models.CommentDraft{PostID: b.ID, Content: "on b"})
	s.AddComment(models.CommentDraft{PostID: a.ID, Content: "on a again"})

	got := s.CommentsForPost(a.ID)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, c := range got {
		if c.PostID != a.ID {
			t.Errorf("comment %q belongs to %q", c.ID, c.PostID)
		}
	}
}

// TestCommentsForPostReturnsCopies ensures callers cannot mutate the tree.
func TestCommentsForPostReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(testDraft("post"))
	parent := s.AddComment(models.CommentDraft{PostID: p.ID, Content: "parent"})
	s.AddComment(models.CommentDraft{PostID: p.ID, ParentID: parent.ID, Content: "reply"})

	got := s.CommentsForPost(p.ID)
	got[0].Content = "edited"
	got[0].Replies[0].Content = "edited"

	again := s.CommentsForPost(p.ID)
	if again[0].Content != "parent" || again[0].Replies[0].Content != "reply" {
		t.Error("store contents changed through returned slice")
	}
}

// TestCommentCountMatchesTreeSize checks the cached count never drifts from
// the real number of comments under a post.
func TestCommentCountMatchesTreeSize(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(testDraft("post"))

	var parents []string
	for i := 0; i < 20; i++ {
		d := models.CommentDraft{PostID: p.ID, Content: fmt.Sprintf("c%d", i)}
		if i%3 == 1 && len(parents) > 0 {
			d.ParentID = parents[len(parents)-1]
		}
		c := s.AddComment(d)
		if d.ParentID == "" {
			parents = append(parents, c.ID)
		}
	}

	var size int
	for _, c := range s.CommentsForPost(p.ID) {
		size += c.TreeSize()
	}
	if got := s.FindPost(p.ID).CommentCount; got != size {
		t.Errorf("CommentCount = %d, tree size = %d", got, size)
	}
	if s.CountComments() != size {
		t.Errorf("CountComments = %d, want %d", s.CountComments(), size)
	}
}

// TestReplyAcrossPostsPlacedTopLevel checks a parent id from another post
// never nests the comment in that post's thread.
func TestReplyAcrossPostsPlacedTopLevel(t *testing.T) {
	s := newTestStore(t)
	a := s.CreatePost(testDraft("a"))
	b := s.CreatePost(testDraft("b"))
	parent := s.AddComment(models.CommentDraft{PostID: a.ID, Content: "on a"})

	c := s.AddComment(models.CommentDraft{PostID: b.ID, ParentID: parent.ID, Content: "on b"})

	onA := s.CommentsForPost(a.ID)
	if len(onA) != 1 || len(onA[0].Replies) != 0 {
		t.Fatalf("post a tree = %+v, want one comment without replies", onA)
	}
	onB := s.CommentsForPost(b.ID)
	if len(onB) != 1 || onB[0].ID != c.ID {
		t.Fatalf("post b tree = %+v, want the comment at top level", onB)
	}

	for _, p := range []models.Post{a, b} {
		var size int
		for _, c := range s.CommentsForPost(p.ID) {
			size += c.TreeSize()
		}
		if got := s.FindPost(p.ID).CommentCount; got != size || got != 1 {
			t.Errorf("post %s: CommentCount = %d, tree size = %d, want 1", p.Title, got, size)
		}
	}
}

func TestToggleBookmark(t *testing.T) {
	s := newTestStore(t)
	p := s.CreatePost(testDraft("post"))

	if !s.ToggleBookmark(p.ID) {
		t.Error("first toggle should bookmark")
	}
	if !s.IsBookmarked(p.ID) {
		t.Error("IsBookmarked should be true")
	}
	if s.ToggleBookmark(p.ID) {
		t.Error("second toggle should remove the bookmark")
	}
	if s.IsBookmarked(p.ID) {
		t.Error("toggle pair should restore the original state")
	}
	if len(s.Bookmarks()) != 0 {
		t.Errorf("Bookmarks = %d, want 0", len(s.Bookmarks()))
	}
}

func TestToggleUnknownPostIsNoop(t *testing.T) {
	s := newTestStore(t)
	before := s.Revision()

	if s.ToggleBookmark("ghost") {
		t.Error("ToggleBookmark(ghost) should report false")
	}
	if s.ToggleStar("ghost") {
		t.Error("ToggleStar(ghost) should report false")
	}
	if s.IsBookmarked("ghost") || s.IsStarred("ghost") {
		t.Error("unknown post must not enter the sets")
	}
	if s.Revision() != before {
		t.Error("no-op toggles should not bump the revision")
	}
}

// TestBookmarksAndStarsAreIndependent verifies the two sets never share state.
func TestBookmarksAndStarsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	a := s.CreatePost(testDraft("a"))
	b := s.CreatePost(testDraft("b"))

	s.ToggleBookmark(a.ID)
	s.ToggleStar(b.ID)
	s.ToggleBookmark(b.ID)

	bookmarks := s.Bookmarks()
	if len(bookmarks) != 2 || bookmarks[0].ID != b.ID || bookmarks[1].ID != a.ID {
		t.Errorf("Bookmarks = %v, want [b a]", ids(bookmarks))
	}
	stars := s.Stars()
	if len(stars) != 1 || stars[0].ID != b.ID {
		t.Errorf("Stars = %v, want [b]", ids(stars))
	}
	if s.IsStarred(a.ID) {
		t.Error("bookmarking must not star")
	}
}

func TestRevisionAdvancesOnMutation(t *testing.T) {
	s := newTestStore(t)
	r0 := s.Revision()

	p := s.CreatePost(testDraft("post"))
	r1 := s.Revision()
	s.AddComment(models.CommentDraft{PostID: p.ID, Content: "c"})
	r2 := s.Revision()
	s.ToggleStar(p.ID)
	r3 := s.Revision()

	if !(r0 < r1 && r1 < r2 && r2 < r3) {
		t.Errorf("revisions not increasing: %d %d %d %d", r0, r1, r2, r3)
	}

	s.Posts()
	s.CommentsForPost(p.ID)
	if s.Revision() != r3 {
		t.Error("reads must not bump the revision")
	}
}

// TestConcurrentMutations exercises every collection from many goroutines;
// run with -race to catch unsynchronized access.
func TestConcurrentMutations(t *testing.T) {
	s := NewContentStore()
	p := s.CreatePost(testDraft("hot thread"))

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.AddComment(models.CommentDraft{PostID: p.ID, Content: "c"})
				s.ToggleBookmark(p.ID)
				s.ToggleStar(p.ID)
				s.CreatePost(testDraft("side"))
				s.Posts()
				s.CommentsForPost(p.ID)
			}
		}()
	}
	wg.Wait()

	if got := s.FindPost(p.ID).CommentCount; got != workers*perWorker {
		t.Errorf("CommentCount = %d, want %d", got, workers*perWorker)
	}
	if got := s.CountPosts(); got != 1+workers*perWorker {
		t.Errorf("CountPosts = %d, want %d", got, 1+workers*perWorker)
	}
	// An even number of toggles returns each set to empty.
	if s.IsBookmarked(p.ID) || s.IsStarred(p.ID) {
		t.Error("even toggle count should leave the post unbookmarked and unstarred")
	}
}

func ids(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
