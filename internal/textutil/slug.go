package textutil

import (
	"regexp"
	"strings"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a title into a URL-friendly slug: lowercase, punctuation
// stripped, whitespace and hyphen runs collapsed to single hyphens, leading
// and trailing hyphens trimmed.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
