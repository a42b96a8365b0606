// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown renders post bodies and code snippets to HTML using
// goldmark. Raw HTML in user content is never passed through.
package markdown

import (
	"bytes"
	"strings"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks, task lists
		extension.Typographer, // smart quotes and dashes
		highlighting.NewHighlighting( // chroma highlighting for fenced code
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// ToHTML converts Markdown source into HTML. Raw HTML blocks and inline
// tags are replaced by goldmark's "raw HTML omitted" comment.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CodeToHTML renders a snippet as a highlighted code block. language is the
// fence info string; an empty or unknown language renders as plain text.
func CodeToHTML(code, language string) (string, error) {
	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}
	lang := strings.Fields(language)
	info := ""
	if len(lang) > 0 {
		info = lang[0]
	}

	var src strings.Builder
	src.WriteString(fence + info + "\n")
	src.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		src.WriteString("\n")
	}
	src.WriteString(fence + "\n")
	return ToHTML(src.String())
}
