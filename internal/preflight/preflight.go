package preflight

import (
	"context"
	"fmt"
	"strings"

	"moneypress/internal/catalog"
	"moneypress/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every applicable check for the given configuration.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Site directory", cfg.Paths.SiteDir),
		CheckDirectoryAccess("Images directory", cfg.Paths.ImagesDir),
		CheckCredential("OpenAI API key", cfg.AI.APIKey, false),
		CheckCredential("Unsplash access key", cfg.Images.UnsplashAccessKey, true),
		CheckCredential("Pixabay API key", cfg.Images.PixabayAPIKey, true),
	}

	if cfg.Content.CreateBacklinks {
		results = append(results,
			CheckCredential("Medium API key", cfg.Platforms.Medium.APIKey, true),
			CheckCredential("Dev.to API key", cfg.Platforms.DevTo.APIKey, true),
			CheckCredential("Blogger API key", cfg.Platforms.Blogger.APIKey, true),
			CheckCredential("Blogger blog ID", cfg.Platforms.Blogger.BlogID, true),
		)
	}

	results = append(results, CheckCatalog(cfg.Paths.CategoriesFile, cfg.Paths.TopicsFile))
	return results
}

// CheckCredential reports whether a credential has been filled in. Sample
// placeholders count as absent. Optional credentials degrade a feature
// instead of blocking a run, so they never fail the check set.
func CheckCredential(name, value string, optional bool) Result {
	trimmed := strings.TrimSpace(value)
	configured := trimmed != "" && !strings.HasPrefix(trimmed, config.PlaceholderCredential)
	if configured {
		return Result{Name: name, Passed: true, Optional: optional, Detail: "configured"}
	}
	detail := "not configured"
	if optional {
		detail += " (feature disabled)"
	}
	return Result{Name: name, Passed: optional, Optional: optional, Detail: detail}
}

// CheckCatalog loads the category and topic files and reports their shape.
func CheckCatalog(categoriesPath, topicsPath string) Result {
	const name = "Topic catalog"

	cat, warnings, err := catalog.Load(categoriesPath, topicsPath)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	detail := fmt.Sprintf("%d categories, %d topic groups", len(cat.Categories), len(cat.Groups))
	if len(warnings) > 0 {
		detail += " (" + strings.Join(warnings, "; ") + ")"
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// HasFailures reports whether any required check failed.
func HasFailures(results []Result) bool {
	for _, result := range results {
		if !result.Passed && !result.Optional {
			return true
		}
	}
	return false
}
