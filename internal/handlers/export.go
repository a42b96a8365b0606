// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"devforum/internal/store"
)

// exportRequest is the body of an export.
type exportRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

// Export packages text as a file. By default the file is returned as an
// attachment; with ?deliver=s3 it is uploaded and a download link returned.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateExport(req.Text, req.Filename); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	exp := store.ExportContent(req.Text, req.Filename)

	switch r.URL.Query().Get("deliver") {
	case "":
		w.Header().Set("Content-Type", exp.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exp.Filename))
		w.Header().Set("Content-Length", strconv.FormatInt(exp.Size, 10))
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, exp.Body); err != nil {
			slog.Warn("export download interrupted", "filename", exp.Filename, "error", err)
		}
	case "s3":
		if a.deliverer == nil {
			writeError(w, http.StatusServiceUnavailable, "Export delivery is not configured.")
			return
		}
		url, err := a.deliverer.Deliver(r.Context(), exp.Filename, exp.ContentType, exp.Body, exp.Size)
		if err != nil {
			slog.Error("export delivery failed", "filename", exp.Filename, "error", err)
			writeError(w, http.StatusBadGateway, "Export upload failed.")
			return
		}
		slog.Info("export delivered", "filename", exp.Filename, "size", exp.Size)
		writeJSON(w, http.StatusCreated, map[string]any{
			"filename": exp.Filename,
			"size":     exp.Size,
			"url":      url,
		})
	default:
		writeError(w, http.StatusBadRequest, "Deliver must be empty or \"s3\".")
	}
}
