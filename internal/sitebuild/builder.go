// Package sitebuild runs the external static-site build and emits the
// crawler files (sitemap.xml, robots.txt) derived from the article ledger.
// HTML rendering itself belongs to the site project, not this tool.
package sitebuild

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"moneypress/internal/catalog"
	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/logging"
)

// Builder drives one site build: external build command first, crawler
// files second.
type Builder struct {
	cfg     *config.Config
	store   *ledger.Store
	catalog *catalog.Catalog
	logger  *slog.Logger

	commandRunner func(ctx context.Context, dir, name string, args ...string) error
}

// NewBuilder constructs a builder.
func NewBuilder(cfg *config.Config, store *ledger.Store, cat *catalog.Catalog, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{cfg: cfg, store: store, catalog: cat, logger: logger}
}

// WithCommandRunner sets a custom command runner (for testing).
func (b *Builder) WithCommandRunner(runner func(ctx context.Context, dir, name string, args ...string) error) {
	b.commandRunner = runner
}

// Build runs the configured build command in the site directory, then writes
// sitemap.xml and robots.txt into the build output directory.
func (b *Builder) Build(ctx context.Context) error {
	if err := b.runBuildCommand(ctx); err != nil {
		return err
	}
	return b.WriteCrawlerFiles(ctx)
}

func (b *Builder) runBuildCommand(ctx context.Context) error {
	fields := strings.Fields(b.cfg.Build.Command)
	if len(fields) == 0 {
		return fmt.Errorf("sitebuild: build command not configured")
	}

	b.logger.Info("running site build", slog.String("command", b.cfg.Build.Command))
	if err := b.run(ctx, b.cfg.Paths.SiteDir, fields[0], fields[1:]...); err != nil {
		return fmt.Errorf("sitebuild: build command: %w", err)
	}
	return nil
}

// WriteCrawlerFiles regenerates sitemap.xml and robots.txt in the output
// directory.
func (b *Builder) WriteCrawlerFiles(ctx context.Context) error {
	outputDir := filepath.Join(b.cfg.Paths.SiteDir, b.cfg.Build.OutputDir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("sitebuild: ensure output dir: %w", err)
	}

	sitemap, err := b.Sitemap(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "sitemap.xml"), []byte(sitemap), 0o644); err != nil {
		return fmt.Errorf("sitebuild: write sitemap: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "robots.txt"), []byte(b.RobotsTxt()), 0o644); err != nil {
		return fmt.Errorf("sitebuild: write robots: %w", err)
	}

	b.logger.Info("wrote crawler files", slog.String("dir", outputDir))
	return nil
}

// Sitemap renders the sitemap: homepage, category pages, then every article
// in ledger order.
func (b *Builder) Sitemap(ctx context.Context) (string, error) {
	articles, err := b.store.Articles(ctx)
	if err != nil {
		return "", fmt.Errorf("sitebuild: load articles: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	base := b.cfg.Site.BaseURL

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	writeURL(&sb, base, today, "daily", "1.0")
	for _, category := range b.catalog.Categories {
		writeURL(&sb, base+"/"+category.Slug, today, "weekly", "0.8")
	}
	for _, article := range articles {
		lastmod := today
		if !article.DatePublished.IsZero() {
			lastmod = article.DatePublished.Format("2006-01-02")
		}
		writeURL(&sb, article.URL, lastmod, "monthly", "0.7")
	}

	sb.WriteString("</urlset>\n")
	return sb.String(), nil
}

func writeURL(sb *strings.Builder, loc, lastmod, changefreq, priority string) {
	sb.WriteString("<url>\n")
	fmt.Fprintf(sb, "<loc>%s</loc>\n", loc)
	fmt.Fprintf(sb, "<lastmod>%s</lastmod>\n", lastmod)
	fmt.Fprintf(sb, "<changefreq>%s</changefreq>\n", changefreq)
	fmt.Fprintf(sb, "<priority>%s</priority>\n", priority)
	sb.WriteString("</url>\n")
}

// RobotsTxt renders the robots.txt body.
func (b *Builder) RobotsTxt() string {
	return strings.Join([]string{
		"User-agent: *",
		"Allow: /",
		"",
		"# Sitemap",
		"Sitemap: " + b.cfg.Site.BaseURL + "/sitemap.xml",
		"",
		"# Crawl-delay",
		"Crawl-delay: 1",
		"",
	}, "\n")
}

func (b *Builder) run(ctx context.Context, dir, name string, args ...string) error {
	if b.commandRunner != nil {
		return b.commandRunner(ctx, dir, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
