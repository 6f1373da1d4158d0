package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// Slugify turns a (usually Arabic) display name into a URL slug.
// Letters of any script are kept; everything else collapses to single dashes.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug appends a millisecond timestamp so repeated names do not collide.
func UniqueSlug(name string, now time.Time) string {
	suffix := strconv.FormatInt(now.UnixMilli(), 10)
	if base := Slugify(name); base != "" {
		return base + "-" + suffix
	}
	return suffix
}
