// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the forum's JSON HTTP API. Handlers decode and
// validate requests, call the forum service or content store, and map the
// outcome to a status code.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"devforum/internal/forum"
	"devforum/internal/models"
	"devforum/internal/store"
)

// maxRequestBody caps JSON request bodies. Exports are the largest payload.
const maxRequestBody = 2 << 20

// Deliverer uploads an export somewhere the author can fetch it from and
// returns the link.
type Deliverer interface {
	Deliver(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}

// API groups the forum's HTTP handlers.
type API struct {
	svc       *forum.Service
	store     *store.ContentStore
	deliverer Deliverer
}

// NewAPI creates the API handlers. deliverer may be nil when object storage
// is not configured; exports are then only offered as direct downloads.
func NewAPI(svc *forum.Service, deliverer Deliverer) *API {
	return &API{svc: svc, store: svc.Store(), deliverer: deliverer}
}

// postView is a post plus the caller-relevant set memberships. The HTML
// fields are only filled when rendering is requested.
type postView struct {
	models.Post
	Bookmarked  bool   `json:"bookmarked"`
	Starred     bool   `json:"starred"`
	ContentHTML string `json:"content_html,omitempty"`
	CodeHTML    string `json:"code_html,omitempty"`
}

func (a *API) viewOf(p models.Post) postView {
	return postView{
		Post:       p,
		Bookmarked: a.store.IsBookmarked(p.ID),
		Starred:    a.store.IsStarred(p.ID),
	}
}

func (a *API) viewsOf(posts []models.Post) []postView {
	out := make([]postView, len(posts))
	for i, p := range posts {
		out[i] = a.viewOf(p)
	}
	return out
}

// decodeJSON reads a size-limited JSON body into dst. It writes the 400
// response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
			return false
		}
		writeError(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes the API's {"error": "..."} envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
