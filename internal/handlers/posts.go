// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devforum/internal/markdown"
	"devforum/internal/models"
)

// ListPosts returns all posts, newest first.
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.viewsOf(a.store.Posts()))
}

// CreatePost validates a draft and stores it. Posts are not moderated.
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	var d models.PostDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	if msg := validatePost(&d); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := a.store.CreatePost(d)
	slog.Info("post created", "post_id", p.ID, "type", p.Type, "tags", p.Tags)
	writeJSON(w, http.StatusCreated, a.viewOf(p))
}

// GetPost returns a single post. With ?render=html the Markdown content and
// the code snippet are also returned as HTML.
func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	p := a.store.FindPost(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}

	view := a.viewOf(*p)
	switch r.URL.Query().Get("render") {
	case "":
	case "html":
		if err := renderPost(&view); err != nil {
			slog.Error("render post", "post_id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Post could not be rendered.")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "Render must be empty or \"html\".")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func renderPost(v *postView) error {
	html, err := markdown.ToHTML(v.Content)
	if err != nil {
		return err
	}
	v.ContentHTML = html

	if v.Code != nil && *v.Code != "" {
		lang := ""
		if v.Language != nil {
			lang = *v.Language
		}
		code, err := markdown.CodeToHTML(*v.Code, lang)
		if err != nil {
			return err
		}
		v.CodeHTML = code
	}
	return nil
}

// ToggleBookmark flips the post's bookmark membership.
func (a *API) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	a.toggle(w, r, "bookmarked", a.store.ToggleBookmark)
}

// ToggleStar flips the post's star membership.
func (a *API) ToggleStar(w http.ResponseWriter, r *http.Request) {
	a.toggle(w, r, "starred", a.store.ToggleStar)
}

func (a *API) toggle(w http.ResponseWriter, r *http.Request, field string, flip func(string) bool) {
	id := chi.URLParam(r, "id")
	if !a.store.HasPost(id) {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"post_id": id,
		field:     flip(id),
	})
}

// Bookmarks lists bookmarked posts, newest first.
func (a *API) Bookmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.viewsOf(a.store.Bookmarks()))
}

// Stars lists starred posts, newest first.
func (a *API) Stars(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.viewsOf(a.store.Stars()))
}
