package articles

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"moneypress/internal/ledger"
)

const maxInjectedPlaceholders = 6

// injectImagePlaceholders inserts an [IMAGE: financial-guide-N.jpg] marker
// after the first paragraph of every second h2 section, up to three markers.
// The content is expected to already be wrapped in an <article> element.
func injectImagePlaceholders(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	if doc.Find("h2").Length() == 0 {
		return content
	}

	doc.Find("h2").Each(func(i int, heading *goquery.Selection) {
		n := i + 1
		if n%2 != 0 || n > maxInjectedPlaceholders {
			return
		}
		para := heading.NextUntil("h2").Filter("p").First()
		if para.Length() == 0 {
			return
		}
		para.AfterHtml(fmt.Sprintf("\n[IMAGE: financial-guide-%d.jpg]\n", n))
	})

	rendered, err := goquery.OuterHtml(doc.Find("article").First())
	if err != nil || rendered == "" {
		return content
	}
	return rendered
}

// addInternalLink links the first matching key phrase (the first three words
// of a recent article title) to that article. At most one link is added, and
// only when the phrase appears verbatim and the article is not already
// linked.
func addInternalLink(content string, recent []*ledger.Article) string {
	for _, article := range recent {
		if article.Title == "" || article.URL == "" {
			continue
		}
		words := strings.Fields(strings.ToLower(article.Title))
		if len(words) > 3 {
			words = words[:3]
		}
		phrase := strings.Join(words, " ")
		if phrase == "" {
			continue
		}
		if strings.Contains(strings.ToLower(content), phrase) && !strings.Contains(content, article.URL) {
			content = strings.Replace(content, phrase, fmt.Sprintf("<a href=%q>%s</a>", article.URL, phrase), 1)
			break
		}
	}
	return content
}
