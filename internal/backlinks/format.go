package backlinks

import (
	"fmt"
	"strings"

	"moneypress/internal/ledger"
	"moneypress/internal/platforms"
)

// Fixed tag sets per platform. Each platform client additionally enforces
// its own cap.
var (
	mediumTags    = []string{"finance", "money", "personal-finance", "fintech", "loans"}
	devtoTags     = []string{"finance", "money", "personalfinance", "fintech"}
	bloggerLabels = []string{"Finance", "Money", "Personal Finance", "Loans", "Credit Cards"}
)

func platformTags(platform string) []string {
	switch platform {
	case platforms.NameMedium:
		return mediumTags
	case platforms.NameDevTo:
		return devtoTags
	case platforms.NameBlogger:
		return bloggerLabels
	}
	return nil
}

// formatBody wraps the generated teaser in platform-appropriate markup with
// a closing attribution block linking back to the article.
func formatBody(platform, title, teaser string, article *ledger.Article, siteName string) string {
	switch platform {
	case platforms.NameMedium:
		return formatForMedium(title, teaser, article, siteName)
	case platforms.NameDevTo:
		return formatForDevTo(title, teaser, article, siteName)
	case platforms.NameBlogger:
		return formatForBlogger(title, teaser, article, siteName)
	}
	return teaser
}

func formatForMedium(title, teaser string, article *ledger.Article, siteName string) string {
	return fmt.Sprintf(`# %s

%s

---

*For the complete guide with detailed analysis and comparison tables, read the full article: [%s](%s)*

*Originally published on [%s](%s) - Your trusted source for financial product comparisons.*
`, title, teaser, article.Title, article.URL, siteName, article.URL)
}

func formatForDevTo(title, teaser string, article *ledger.Article, siteName string) string {
	return fmt.Sprintf(`# %s

%s

## 🔗 Read the Complete Guide

For in-depth analysis, comparison tables, and actionable tips, check out the full article:

**[%s](%s)**

---

*This article was originally published on [%s](%s) where we help you compare financial products and make informed decisions.*

#finance #money #personalfinance #fintech
`, title, teaser, article.Title, article.URL, siteName, article.URL)
}

func formatForBlogger(title, teaser string, article *ledger.Article, siteName string) string {
	htmlBody := strings.ReplaceAll(teaser, "\n\n", "</p><p>")
	htmlBody = strings.ReplaceAll(htmlBody, "\n", "<br>")

	return fmt.Sprintf(`<h2>%s</h2>

<p>%s</p>

<hr>

<p><strong>Read the Complete Guide:</strong></p>
<p>For detailed analysis and comprehensive comparison tables, visit the full article:
<a href="%s" target="_blank">%s</a></p>

<p><em>Originally published on <a href="%s" target="_blank">%s</a> -
Compare financial products and make smart money decisions.</em></p>
`, title, htmlBody, article.URL, article.Title, article.URL, siteName)
}
