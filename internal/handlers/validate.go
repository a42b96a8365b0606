package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"devforum/internal/models"
)

// Validation limits for posts, comments, and exports.
const (
	maxTitleLen      = 300
	maxBodyLen       = 100_000
	maxCodeLen       = 50_000
	maxLanguageLen   = 40
	maxAuthorNameLen = 100
	maxTags          = 5
	maxTagLen        = 30
	maxCommentLen    = 10_000
	maxModerateLen   = 10_000
	maxExportLen     = 1_000_000
	maxFilenameLen   = 200
	maxEngagement    = 100
)

// validatePost checks a post draft and returns the first error found.
func validatePost(d *models.PostDraft) string {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(d.Content) > maxBodyLen {
		return "Content is too long (max 100,000 characters)."
	}
	if d.Code != nil && utf8.RuneCountInString(*d.Code) > maxCodeLen {
		return "Code is too long (max 50,000 characters)."
	}
	if d.Language != nil && utf8.RuneCountInString(*d.Language) > maxLanguageLen {
		return "Language is too long (max 40 characters)."
	}
	if msg := validateAuthor(d.Author); msg != "" {
		return msg
	}
	if !d.Type.Valid() {
		return fmt.Sprintf("Type must be one of %s, %s, %s.",
			models.PostTypeQuestion, models.PostTypeDiscussion, models.PostTypeCodeReview)
	}
	if d.Difficulty != nil && !d.Difficulty.Valid() {
		return fmt.Sprintf("Difficulty must be one of %s, %s, %s.",
			models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced)
	}
	if msg := validateTags(d.Tags); msg != "" {
		return msg
	}
	if d.Saves < 0 {
		return "Saves cannot be negative."
	}
	if d.EngagementRate < 0 || d.EngagementRate > maxEngagement {
		return "Engagement rate must be between 0 and 100."
	}
	return ""
}

// validateTags checks tag count and length. Tags are compared as given.
func validateTags(tags []string) string {
	if len(tags) > maxTags {
		return "Too many tags (max 5)."
	}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return "Tags cannot be empty."
		}
		if utf8.RuneCountInString(tag) > maxTagLen {
			return "Tag is too long (max 30 characters)."
		}
		if seen[tag] {
			return fmt.Sprintf("Duplicate tag %q.", tag)
		}
		seen[tag] = true
	}
	return ""
}

// validateAuthor checks the embedded author.
func validateAuthor(a models.Author) string {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return "Author name is required."
	}
	if utf8.RuneCountInString(name) > maxAuthorNameLen {
		return "Author name is too long (max 100 characters)."
	}
	return ""
}

// validateComment checks a comment draft and returns the first error found.
func validateComment(d *models.CommentDraft) string {
	if msg := validateAuthor(d.Author); msg != "" {
		return msg
	}
	content := strings.TrimSpace(d.Content)
	if content == "" {
		return "Comment cannot be empty."
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "Comment is too long (max 10,000 characters)."
	}
	return ""
}

// validateModerate checks text submitted for a moderation preview.
func validateModerate(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Text is required."
	}
	if utf8.RuneCountInString(text) > maxModerateLen {
		return "Text is too long (max 10,000 characters)."
	}
	return ""
}

// validateExport checks export inputs. Empty text is allowed.
func validateExport(text, filename string) string {
	if len(text) > maxExportLen {
		return "Export is too large (max 1 MB)."
	}
	if utf8.RuneCountInString(filename) > maxFilenameLen {
		return "Filename is too long (max 200 characters)."
	}
	return ""
}
