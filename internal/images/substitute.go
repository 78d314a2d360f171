package images

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"moneypress/internal/ledger"
)

var placeholderPattern = regexp.MustCompile(`\[IMAGE:\s*([^\]]+)\]`)

// SubstitutePlaceholders replaces [IMAGE: ...] markers in document order
// with figure markup for the resolved images. Markers beyond the resolved
// count are removed.
func SubstitutePlaceholders(content string, images []ledger.ResolvedImage) string {
	queue := images
	return placeholderPattern.ReplaceAllStringFunc(content, func(string) string {
		if len(queue) == 0 {
			return ""
		}
		image := queue[0]
		queue = queue[1:]
		return figureHTML(image)
	})
}

func figureHTML(image ledger.ResolvedImage) string {
	var b strings.Builder
	b.WriteString(`<figure class="article-image">` + "\n")
	fmt.Fprintf(&b, `  <img src=%q alt=%q title=%q width="%d" height="%d" loading="lazy">`,
		image.URL, image.AltText, image.Title, image.Width, image.Height)
	if image.AttributionRequired {
		fmt.Fprintf(&b, "\n  <figcaption>Photo by <a href=%q target=\"_blank\">%s</a></figcaption>",
			image.PhotographerURL, html.EscapeString(image.Photographer))
	}
	b.WriteString("\n</figure>")
	return b.String()
}
