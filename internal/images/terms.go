package images

import "moneypress/internal/ledger"

const maxSearchTerms = 8

// Per-category search vocabulary, keyed by category display name.
var categorySearchTerms = map[string][]string{
	"Auto Loans":                          {"car finance", "auto loan", "vehicle financing", "car dealership"},
	"Credit Score":                        {"credit report", "financial planning", "credit score", "financial advice"},
	"Personal Loans":                      {"personal finance", "loan application", "financial planning", "money management"},
	"Mortgages":                           {"home mortgage", "real estate", "house buying", "property finance"},
	"Business Loans":                      {"business finance", "entrepreneur", "business meeting", "office finance"},
	"Credit Cards":                        {"credit card", "payment card", "financial transaction", "shopping payment"},
	"Student Loans":                       {"student finance", "education funding", "college student", "graduation"},
	"Rewards & Cashback":                  {"cashback rewards", "credit card rewards", "shopping benefits", "financial rewards"},
	"Balance Transfers & Debt Management": {"debt management", "financial planning", "debt relief", "financial stress"},
	"Building & Rebuilding Credit":        {"credit building", "financial improvement", "credit repair", "financial success"},
	"Travel & Premium Cards":              {"travel finance", "airport lounge", "premium travel", "travel rewards"},
	"Business Credit Cards":               {"business card", "corporate finance", "business expense", "office payment"},
	"Credit Card Protections & Security":  {"financial security", "payment protection", "secure payment", "financial safety"},
	"Advanced Tips & Optimization":        {"financial strategy", "money optimization", "financial planning", "investment advice"},
}

var genericSearchTerms = []string{
	"business finance",
	"financial planning",
	"money management",
	"calculator finance",
	"professional meeting",
	"financial advisor",
}

// searchTerms builds the ordered query list for one article: category terms,
// generic financial terms, then up to three longer article keywords, capped
// at eight.
func searchTerms(article *ledger.Article) []string {
	var terms []string

	if categoryTerms, ok := categorySearchTerms[article.CategoryName]; ok {
		terms = append(terms, categoryTerms...)
	}
	terms = append(terms, genericSearchTerms...)

	added := 0
	for _, kw := range article.Keywords {
		if len(kw) > 4 {
			terms = append(terms, kw)
			added++
			if added == 3 {
				break
			}
		}
	}

	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}
	return terms
}
