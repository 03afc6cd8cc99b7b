package handlers

import (
	"unicode/utf8"
)

// Validation limits for article metadata. Shopify rejects longer titles;
// the rest keep drafts within a sane size.
const (
	maxTitleLen   = 255
	maxAuthorLen  = 100
	maxExcerptLen = 1_000
	maxTags       = 250
	maxTagLen     = 255
)

// validateMeta checks article metadata and returns the first error found.
// A blank title is not reported here; the save flow rejects it.
func validateMeta(title, author, excerpt string, tags []string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 255 characters)."
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return "Author is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	if len(tags) > maxTags {
		return "Too many tags (max 250)."
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > maxTagLen {
			return "A tag is too long (max 255 characters)."
		}
	}
	return ""
}
