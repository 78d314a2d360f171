package sitebuild

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"moneypress/internal/catalog"
	"moneypress/internal/config"
	"moneypress/internal/ledger"
)

func testBuilder(t *testing.T) (*Builder, *config.Config, *ledger.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Site.BaseURL = "https://example.com"
	cfg.Paths.SiteDir = t.TempDir()
	cfg.Build.OutputDir = "dist"
	cfg.Build.Command = "npm run build"

	store, err := ledger.OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cat := &catalog.Catalog{Categories: []catalog.Category{
		{ID: 1, Name: "Credit Cards", Slug: "credit-cards"},
	}}
	return NewBuilder(&cfg, store, cat, nil), &cfg, store
}

func TestBuildRunsCommandAndWritesCrawlerFiles(t *testing.T) {
	builder, cfg, store := testBuilder(t)
	ctx := context.Background()

	published := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	article := &ledger.Article{
		Slug: "best-cards", Title: "Best Cards", CategorySlug: "credit-cards",
		URL:           "https://example.com/credit-cards/best-cards",
		DatePublished: published, DateModified: published,
	}
	if err := store.AddArticle(ctx, article); err != nil {
		t.Fatalf("seed article: %v", err)
	}

	var ranDir, ranName string
	var ranArgs []string
	builder.WithCommandRunner(func(_ context.Context, dir, name string, args ...string) error {
		ranDir, ranName, ranArgs = dir, name, args
		return nil
	})

	if err := builder.Build(ctx); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ranDir != cfg.Paths.SiteDir || ranName != "npm" || len(ranArgs) != 2 {
		t.Fatalf("command = %q %v in %q", ranName, ranArgs, ranDir)
	}

	sitemap, err := os.ReadFile(filepath.Join(cfg.Paths.SiteDir, "dist", "sitemap.xml"))
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	content := string(sitemap)
	for _, want := range []string{
		"<loc>https://example.com</loc>",
		"<changefreq>daily</changefreq>",
		"<priority>1.0</priority>",
		"<loc>https://example.com/credit-cards</loc>",
		"<changefreq>weekly</changefreq>",
		"<loc>https://example.com/credit-cards/best-cards</loc>",
		"<lastmod>2025-08-20</lastmod>",
		"<changefreq>monthly</changefreq>",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("sitemap missing %q:\n%s", want, content)
		}
	}

	robots, err := os.ReadFile(filepath.Join(cfg.Paths.SiteDir, "dist", "robots.txt"))
	if err != nil {
		t.Fatalf("read robots: %v", err)
	}
	if !strings.Contains(string(robots), "Sitemap: https://example.com/sitemap.xml") {
		t.Fatalf("robots.txt missing sitemap line:\n%s", robots)
	}
	if !strings.Contains(string(robots), "Crawl-delay: 1") {
		t.Fatalf("robots.txt missing crawl delay:\n%s", robots)
	}
}

func TestBuildCommandFailureAborts(t *testing.T) {
	builder, cfg, _ := testBuilder(t)
	builder.WithCommandRunner(func(context.Context, string, string, ...string) error {
		return os.ErrPermission
	})

	if err := builder.Build(context.Background()); err == nil {
		t.Fatal("expected error from failing build command")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.SiteDir, "dist", "sitemap.xml")); !os.IsNotExist(err) {
		t.Fatal("crawler files written despite failed build")
	}
}
