package articles

import (
	"regexp"
	"sort"
	"strings"

	"moneypress/internal/catalog"
	"moneypress/internal/ledger"
)

const (
	maxKeywords        = 10
	metaDescriptionMax = 155
	excerptMax         = 200
	relatedLimit       = 3
)

var keywordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

var stopWords = map[string]bool{
	"that": true, "with": true, "have": true, "this": true, "will": true,
	"your": true, "from": true, "they": true, "know": true, "want": true,
	"been": true, "good": true, "much": true, "some": true, "time": true,
	"very": true, "when": true, "come": true, "here": true, "just": true,
	"like": true, "long": true, "make": true, "many": true, "over": true,
	"such": true, "take": true, "than": true, "them": true, "well": true,
	"were": true,
}

// Fixed tag supplements per category slug; at most two are appended.
var categoryTags = map[string][]string{
	"credit-cards":   {"Credit", "APR", "Rewards", "Balance Transfer"},
	"personal-loans": {"Loans", "Interest Rate", "Debt Consolidation"},
	"auto-loans":     {"Auto Financing", "Car Loans", "Vehicle"},
	"mortgages":      {"Home Loans", "Real Estate", "Property"},
	"credit-score":   {"Credit Report", "FICO", "Credit History"},
}

var imagePlaceholderPattern = regexp.MustCompile(`\[IMAGE:\s*([^\]]+)\]`)

// extractKeywords returns the most frequent non-stop-word terms in the
// content, most frequent first. Ties keep first-occurrence order so results
// are stable across runs.
func extractKeywords(content string) []string {
	words := keywordPattern.FindAllString(strings.ToLower(content), -1)

	freq := make(map[string]int)
	var order []string
	for _, word := range words {
		if stopWords[word] {
			continue
		}
		if freq[word] == 0 {
			order = append(order, word)
		}
		freq[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// generateTags combines the category name, up to five longer keywords, and
// up to two fixed category tags, deduplicated in insertion order.
func generateTags(category *catalog.Category, keywords []string) []string {
	tags := []string{category.Name}

	added := 0
	for _, kw := range keywords {
		if len(kw) > 4 {
			tags = append(tags, kw)
			added++
			if added == 5 {
				break
			}
		}
	}

	if extra, ok := categoryTags[category.Slug]; ok {
		if len(extra) > 2 {
			extra = extra[:2]
		}
		tags = append(tags, extra...)
	}

	seen := make(map[string]bool, len(tags))
	deduped := tags[:0]
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		deduped = append(deduped, tag)
	}
	return deduped
}

// extractImagePlaceholders returns the placeholder filenames in document
// order.
func extractImagePlaceholders(content string) []string {
	matches := imagePlaceholderPattern.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSpace(match[1]))
	}
	return names
}

// findRelatedSlugs picks up to three related articles: same-category first,
// then cross-category.
func findRelatedSlugs(categorySlug, topic string, published []*ledger.Article) []string {
	var sameCategory, other []string
	for _, article := range published {
		if article.CategorySlug == categorySlug {
			if article.Title != topic {
				sameCategory = append(sameCategory, article.Slug)
			}
			continue
		}
		other = append(other, article.Slug)
	}

	half := relatedLimit / 2
	if len(sameCategory) > half {
		sameCategory = sameCategory[:half]
	}
	if len(other) > half {
		other = other[:half]
	}
	related := append(sameCategory, other...)
	if len(related) > relatedLimit {
		related = related[:relatedLimit]
	}
	return related
}

// StructuredData builds the schema.org Article JSON-LD document for an
// article. It is derived on demand rather than stored.
func StructuredData(article *ledger.Article, siteName, logoURL string) map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Article",
		"headline":    article.Title,
		"description": article.MetaDescription,
		"author": map[string]any{
			"@type": "Organization",
			"name":  siteName,
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  siteName,
			"logo": map[string]any{
				"@type": "ImageObject",
				"url":   logoURL,
			},
		},
		"datePublished": article.DatePublished.Format("2006-01-02T15:04:05Z07:00"),
		"dateModified":  article.DateModified.Format("2006-01-02T15:04:05Z07:00"),
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   article.URL,
		},
	}
}
