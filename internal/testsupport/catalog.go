package testsupport

import (
	"os"
	"testing"

	"moneypress/internal/catalog"
	"moneypress/internal/config"
)

const sampleCategories = `{
  "categories": [
    {
      "id": 1,
      "name": "Credit Cards",
      "slug": "credit-cards",
      "compare_url": "https://example.com/credit-cards/compare",
      "best_url": "https://example.com/credit-cards/best"
    }
  ]
}`

const sampleTopics = `{
  "topics": [
    {"category_id": 1, "topics": ["Best Credit Cards 2025"]}
  ]
}`

// WriteCatalog writes a minimal category/topic backlog to the config's
// catalog paths and returns the loaded catalog.
func WriteCatalog(t testing.TB, cfg *config.Config) *catalog.Catalog {
	t.Helper()

	if err := os.WriteFile(cfg.Paths.CategoriesFile, []byte(sampleCategories), 0o644); err != nil {
		t.Fatalf("write categories: %v", err)
	}
	if err := os.WriteFile(cfg.Paths.TopicsFile, []byte(sampleTopics), 0o644); err != nil {
		t.Fatalf("write topics: %v", err)
	}
	cat, _, err := catalog.Load(cfg.Paths.CategoriesFile, cfg.Paths.TopicsFile)
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return cat
}
