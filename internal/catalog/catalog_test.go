package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moneypress/internal/catalog"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validCategories = `{
  "categories": [
    {"id": 1, "name": "Credit Cards", "slug": "credit-cards",
     "compare_url": "https://moneymatrix.me/credit-cards/compare",
     "best_url": "https://moneymatrix.me/credit-cards/best"},
    {"id": 2, "name": "Personal Loans", "slug": "personal-loans"}
  ]
}`

const validTopics = `{
  "topics": [
    {"category_id": 1, "topics": ["Best Credit Cards 2025", "How APR Works"]},
    {"category_id": 2, "topics": ["Personal Loan Basics"]}
  ]
}`

func TestLoadValidCatalog(t *testing.T) {
	dir := t.TempDir()
	catsPath := writeFile(t, dir, "categories.json", validCategories)
	topicsPath := writeFile(t, dir, "topics.json", validTopics)

	cat, warnings, err := catalog.Load(catsPath, topicsPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(cat.Categories) != 2 || len(cat.Groups) != 2 {
		t.Fatalf("loaded %d categories, %d groups", len(cat.Categories), len(cat.Groups))
	}
	if got := cat.CategoryByID(1); got == nil || got.Slug != "credit-cards" {
		t.Fatalf("CategoryByID(1) = %+v", got)
	}
	if got := cat.CategoryBySlug("personal-loans"); got == nil || got.ID != 2 {
		t.Fatalf("CategoryBySlug = %+v", got)
	}
	if cat.CategoryByID(99) != nil {
		t.Fatal("unknown id should return nil")
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	catsPath := writeFile(t, dir, "categories.json", `{
  "categories": [
    {"id": 1, "name": "A", "slug": "a"},
    {"id": 1, "name": "B", "slug": "b"}
  ]
}`)
	topicsPath := writeFile(t, dir, "topics.json", validTopics)

	_, _, err := catalog.Load(catsPath, topicsPath)
	if err == nil || !strings.Contains(err.Error(), "duplicate category id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadRejectsMissingFields(t *testing.T) {
	dir := t.TempDir()
	catsPath := writeFile(t, dir, "categories.json", `{"categories": [{"id": 1, "name": "A"}]}`)
	topicsPath := writeFile(t, dir, "topics.json", validTopics)

	_, _, err := catalog.Load(catsPath, topicsPath)
	if err == nil || !strings.Contains(err.Error(), "missing slug") {
		t.Fatalf("expected missing slug error, got %v", err)
	}
}

func TestLoadMissingTopicsIsWarning(t *testing.T) {
	dir := t.TempDir()
	catsPath := writeFile(t, dir, "categories.json", validCategories)

	cat, warnings, err := catalog.Load(catsPath, filepath.Join(dir, "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Groups) != 0 {
		t.Fatal("expected empty backlog")
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "topics file not found") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing-topics warning, got %v", warnings)
	}
}

func TestLoadWarnsOnUnknownCategoryReference(t *testing.T) {
	dir := t.TempDir()
	catsPath := writeFile(t, dir, "categories.json", validCategories)
	topicsPath := writeFile(t, dir, "topics.json", `{
  "topics": [{"category_id": 42, "topics": ["Orphan Topic"]}]
}`)

	_, warnings, err := catalog.Load(catsPath, topicsPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "unknown category 42") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown-category warning, got %v", warnings)
	}
}
