// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devforum/internal/forum"
	"devforum/internal/models"
	"devforum/internal/moderation"
)

// commentRequest is the body of a comment submission. The post comes from
// the URL.
type commentRequest struct {
	Author   models.Author `json:"author"`
	Content  string        `json:"content"`
	ParentID string        `json:"parent_id"`
}

// moderateRequest is the body of a moderation preview.
type moderateRequest struct {
	Text string `json:"text"`
}

// ListComments returns the post's comment tree.
func (a *API) ListComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.store.HasPost(id) {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}
	writeJSON(w, http.StatusOK, a.store.CommentsForPost(id))
}

// SubmitComment moderates and stores a comment. Allowed and warned comments
// answer 201 with the decision and the stored comment; blocked comments
// answer 422 with the decision only.
func (a *API) SubmitComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d := models.CommentDraft{
		PostID:   chi.URLParam(r, "id"),
		ParentID: req.ParentID,
		Author:   req.Author,
		Content:  req.Content,
	}
	if msg := validateComment(&d); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	sub, err := a.svc.SubmitComment(r.Context(), d)
	switch {
	case errors.Is(err, forum.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found.")
	case errors.Is(err, forum.ErrBlocked):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    sub.Decision.Message,
			"decision": sub.Decision,
		})
	case err != nil:
		slog.Error("comment moderation failed", "post_id", d.PostID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Moderation is unavailable, please try again shortly.")
	default:
		writeJSON(w, http.StatusCreated, sub)
	}
}

// Moderate previews the gate's decision for a text without storing anything.
func (a *API) Moderate(w http.ResponseWriter, r *http.Request) {
	var req moderateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateModerate(req.Text); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	decision, err := a.svc.Gate().Moderate(r.Context(), req.Text)
	if err != nil {
		slog.Error("moderation preview failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Moderation is unavailable, please try again shortly.")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		*moderation.Decision
		Admitted bool `json:"admitted"`
	}{decision, decision.Admitted()})
}

// ModerationStatus reports the gate's thresholds and whether a
// classification is in flight. The busy flag is a UI hint only.
func (a *API) ModerationStatus(w http.ResponseWriter, r *http.Request) {
	gate := a.svc.Gate()
	th := gate.Thresholds()
	writeJSON(w, http.StatusOK, map[string]any{
		"checking":        gate.Checking(),
		"warn_threshold":  th.Warn,
		"block_threshold": th.Block,
	})
}
