// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns arbitrary strings into safe, URL- and filename-friendly
// identifiers.
package slug

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// whitespace matches any run of spaces, tabs, or newlines.
	whitespace = regexp.MustCompile(`\s+`)
)

// maxFilenameLen bounds the slugged stem of an export filename.
const maxFilenameLen = 80

// Generate creates a URL-friendly slug from the given string. Accents are
// stripped before filtering, so "Café Déjà Vu" becomes "cafe-deja-vu".
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(stripAccents(s)))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Filename builds a download filename from a free-form hint. The extension
// is kept when it is one of allowed, otherwise defaultExt is appended. An
// empty stem falls back to fallback.
//
// Example: Filename("My Notes.md", "export", ".txt", ".md", ".txt") -> "my-notes.md"
func Filename(hint, fallback, defaultExt string, allowed ...string) string {
	ext := strings.ToLower(path.Ext(hint))
	stem := hint
	if isAllowed(ext, allowed) {
		stem = strings.TrimSuffix(hint, path.Ext(hint))
	} else {
		ext = defaultExt
	}

	stem = Generate(stem)
	if len(stem) > maxFilenameLen {
		stem = strings.Trim(stem[:maxFilenameLen], "-")
	}
	if stem == "" {
		stem = fallback
	}
	return stem + ext
}

func isAllowed(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// stripAccents decomposes s and drops combining marks.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
