// Package testsupport provides shared helpers for package tests: temp-backed
// configurations, ledger stores, and catalog fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"moneypress/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Site.BaseURL = "https://example.com"
	cfg.AI.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.SiteDir = filepath.Join(base, "site")
	cfg.Paths.ImagesDir = filepath.Join(base, "images")
	cfg.Paths.CategoriesFile = filepath.Join(base, "categories.json")
	cfg.Paths.TopicsFile = filepath.Join(base, "topics.json")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithBaseURL overrides the site base URL on the test config.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Site.BaseURL = url
	}
}

// WithBacklinksDisabled turns the backlink feature off on the test config.
func WithBacklinksDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Content.CreateBacklinks = false
	}
}
