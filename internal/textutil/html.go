package textutil

import (
	"math"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanHTML strips tags from an HTML fragment and collapses whitespace,
// leaving plain text suitable for word counting and excerpting.
func CleanHTML(htmlContent string) string {
	text := tagPattern.ReplaceAllString(htmlContent, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// WordCount counts whitespace-separated words in the plain-text rendering
// of the fragment.
func WordCount(htmlContent string) int {
	return len(strings.Fields(CleanHTML(htmlContent)))
}

// ReadTime estimates reading time in whole minutes at 200 words per minute.
// Never returns less than one minute. The count is taken over the raw
// fragment, markup included, matching the published figures readers already
// see on existing articles.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Round(float64(words) / 200.0))
	if minutes < 1 {
		return 1
	}
	return minutes
}
