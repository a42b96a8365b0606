// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"bytes"
	"io"
	"path"

	"devforum/internal/slug"
)

// exportContentTypes maps the extensions an export may carry to their MIME type.
var exportContentTypes = map[string]string{
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".json": "application/json",
}

// Export is a packaged piece of text ready for a delivery collaborator
// (an HTTP download, an object store upload).
type Export struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ExportContent packages text under a filename derived from hint. The text is
// passed through unvalidated.
func ExportContent(text, hint string) *Export {
	name := slug.Filename(hint, "export", ".txt", ".txt", ".md", ".json")
	data := []byte(text)
	return &Export{
		Filename:    name,
		ContentType: exportContentTypes[path.Ext(name)],
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}
}
