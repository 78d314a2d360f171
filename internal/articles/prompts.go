package articles

import "strings"

// The article templates share one placeholder set: {topic}, {category},
// {money_page_url} and {related_article_url}. One template is picked at
// random per article so the output does not converge on a single structure.
var articleTemplates = []string{
	`Write a comprehensive article about {topic} in the {category} category.

Requirements:
- Use HTML formatting with <h2> section headings and <p> paragraphs
- 800-1200 words, practical and informative
- Include one natural link to {money_page_url} where readers can compare options
- Include one natural link to {related_article_url} for further reading
- End with a short conclusion section

Write for a US consumer audience making a financial decision.`,

	`You are a personal finance writer. Create an in-depth guide titled "{topic}" for the {category} section of a comparison site.

Structure it as HTML: an opening paragraph, 4-6 <h2> sections with <p> paragraphs, and a closing takeaway.
Work in a link to {money_page_url} when discussing how to compare offers, and a link to {related_article_url} as a related read.
Keep the tone clear and trustworthy. Avoid hype and avoid giving individualized financial advice.`,

	`Write an educational article on {topic} for readers researching {category}.

Format: HTML with <h2> headings and <p> paragraphs, roughly 1000 words.
Cover what it is, how it works, common mistakes, and actionable next steps.
Reference {money_page_url} once as the place to compare current options and {related_article_url} once as related reading.`,
}

// Topic variation prompts used when the backlog is exhausted. The single
// placeholder is the lowercased category name.
var variationPrompts = []string{
	"Generate a fresh article topic about %s for 2025",
	"What's a trending %s topic people should know about?",
	"Create an informative article title about %s tips",
}

func fillTemplate(template, topic, category, moneyPageURL, relatedURL string) string {
	return strings.NewReplacer(
		"{topic}", topic,
		"{category}", category,
		"{money_page_url}", moneyPageURL,
		"{related_article_url}", relatedURL,
	).Replace(template)
}
