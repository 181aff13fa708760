package utils

import (
	"regexp"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugHyphenRe   = regexp.MustCompile(`-+`)
	uuidPatternRe  = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	uuidStrictRe   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	slugFallback   = "untitled"
	missingIDToken = "unknown"
)

// Slugify normalizes a title into a URL-safe token.
// Pipeline: lowercase -> trim -> strip chars outside [word, space, hyphen]
// -> collapse whitespace runs to a single hyphen -> collapse repeated
// hyphens -> trim hyphens. An empty result falls back to "untitled".
// Non-ASCII letters are stripped; a title made entirely of them still
// yields a resolvable token because the id is appended by EncodeSlug.
func Slugify(title string) string {
	// Step 1: Lowercase + trim
	s := strings.ToLower(strings.TrimSpace(title))

	// Step 2: Strip everything outside word chars, whitespace, hyphens
	s = slugStripRe.ReplaceAllString(s, "")

	// Step 3: Whitespace runs become a single hyphen
	s = slugSpaceRe.ReplaceAllString(s, "-")

	// Step 4: Collapse repeated hyphens
	s = slugHyphenRe.ReplaceAllString(s, "-")

	// Step 5: Trim leading/trailing hyphens
	s = strings.Trim(s, "-")

	if s == "" {
		return slugFallback
	}
	return s
}

// EncodeSlug builds the browsable route token for a post:
// slugified title + "-" + id. The embedded id is what makes the token
// resolvable; the title part is display-only and may collide.
func EncodeSlug(title, id string) string {
	if id == "" {
		id = missingIDToken
	}
	return Slugify(title) + "-" + id
}

// DecodeSlug extracts the embedded post id from a route token.
// Scans for the first canonical UUID (8-4-4-4-12 hex groups) and returns it,
// or "" when the token carries none. Never attempts to recover the title.
func DecodeSlug(token string) string {
	return uuidPatternRe.FindString(token)
}

// IsValidUUID reports whether s is a canonical UUID string.
func IsValidUUID(s string) bool {
	return uuidStrictRe.MatchString(s)
}
