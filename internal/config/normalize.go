package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSite()
	c.normalizeAI()
	c.normalizeImages()
	c.normalizePlatforms()
	c.normalizeBuild()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	c.Paths.SiteDir = strings.TrimSpace(c.Paths.SiteDir)
	if c.Paths.SiteDir != "" {
		if c.Paths.SiteDir, err = expandPath(c.Paths.SiteDir); err != nil {
			return fmt.Errorf("paths.site_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.ImagesDir) == "" && c.Paths.SiteDir != "" {
		c.Paths.ImagesDir = filepath.Join(c.Paths.SiteDir, "static", "images")
	}
	if c.Paths.ImagesDir != "" {
		if c.Paths.ImagesDir, err = expandPath(c.Paths.ImagesDir); err != nil {
			return fmt.Errorf("paths.images_dir: %w", err)
		}
	}
	for name, field := range map[string]*string{
		"paths.categories_file": &c.Paths.CategoriesFile,
		"paths.topics_file":     &c.Paths.TopicsFile,
	} {
		value := strings.TrimSpace(*field)
		if value == "" {
			continue
		}
		// Relative backlog paths resolve against the site directory when one
		// is configured, so `data/categories.json` keeps working.
		if !filepath.IsAbs(value) && !strings.HasPrefix(value, "~") && c.Paths.SiteDir != "" {
			value = filepath.Join(c.Paths.SiteDir, value)
		}
		expanded, err := expandPath(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*field = expanded
	}
	return nil
}

func (c *Config) normalizeSite() {
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = defaultSiteBaseURL
	}
	c.Site.Name = strings.TrimSpace(c.Site.Name)
	if c.Site.Name == "" {
		c.Site.Name = defaultSiteName
	}
}

func (c *Config) normalizeAI() {
	c.AI.APIKey = strings.TrimSpace(c.AI.APIKey)
	if c.AI.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.AI.APIKey = strings.TrimSpace(value)
		}
	}
	c.AI.BaseURL = strings.TrimRight(strings.TrimSpace(c.AI.BaseURL), "/")
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = defaultAIBaseURL
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		c.AI.Model = defaultAIModel
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = defaultAIMaxTokens
	}
}

func (c *Config) normalizeImages() {
	c.Images.UnsplashAccessKey = strings.TrimSpace(c.Images.UnsplashAccessKey)
	if c.Images.UnsplashAccessKey == "" {
		if value, ok := os.LookupEnv("UNSPLASH_ACCESS_KEY"); ok {
			c.Images.UnsplashAccessKey = strings.TrimSpace(value)
		}
	}
	c.Images.PixabayAPIKey = strings.TrimSpace(c.Images.PixabayAPIKey)
	if c.Images.PixabayAPIKey == "" {
		if value, ok := os.LookupEnv("PIXABAY_API_KEY"); ok {
			c.Images.PixabayAPIKey = strings.TrimSpace(value)
		}
	}
	if c.Images.PerArticle <= 0 {
		c.Images.PerArticle = defaultImagesPerArticle
	}
	if c.Images.SearchPerPage <= 0 {
		c.Images.SearchPerPage = defaultImagesPerPage
	}
	if c.Images.SearchDelayMS < 0 {
		c.Images.SearchDelayMS = 0
	}
}

func (c *Config) normalizePlatforms() {
	c.Platforms.Medium.APIKey = strings.TrimSpace(c.Platforms.Medium.APIKey)
	if c.Platforms.Medium.APIKey == "" {
		if value, ok := os.LookupEnv("MEDIUM_API_KEY"); ok {
			c.Platforms.Medium.APIKey = strings.TrimSpace(value)
		}
	}
	c.Platforms.DevTo.APIKey = strings.TrimSpace(c.Platforms.DevTo.APIKey)
	if c.Platforms.DevTo.APIKey == "" {
		if value, ok := os.LookupEnv("DEVTO_API_KEY"); ok {
			c.Platforms.DevTo.APIKey = strings.TrimSpace(value)
		}
	}
	c.Platforms.Blogger.APIKey = strings.TrimSpace(c.Platforms.Blogger.APIKey)
	if c.Platforms.Blogger.APIKey == "" {
		if value, ok := os.LookupEnv("BLOGGER_API_KEY"); ok {
			c.Platforms.Blogger.APIKey = strings.TrimSpace(value)
		}
	}
	c.Platforms.Blogger.BlogID = strings.TrimSpace(c.Platforms.Blogger.BlogID)

	rotation := make([]string, 0, len(c.Platforms.Rotation))
	for _, name := range c.Platforms.Rotation {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			rotation = append(rotation, name)
		}
	}
	if len(rotation) == 0 {
		rotation = defaultRotation()
	}
	c.Platforms.Rotation = rotation

	if c.Platforms.PostDelayMinSec <= 0 {
		c.Platforms.PostDelayMinSec = defaultPostDelayMinSec
	}
	if c.Platforms.PostDelayMaxSec <= 0 {
		c.Platforms.PostDelayMaxSec = defaultPostDelayMaxSec
	}
}

func (c *Config) normalizeBuild() {
	c.Build.Command = strings.TrimSpace(c.Build.Command)
	if c.Build.Command == "" {
		c.Build.Command = defaultBuildCommand
	}
	c.Build.OutputDir = strings.TrimSpace(c.Build.OutputDir)
	if c.Build.OutputDir == "" {
		c.Build.OutputDir = defaultBuildOutputDir
	}
	c.Deploy.Command = strings.TrimSpace(c.Deploy.Command)
	if c.Deploy.Command == "" {
		c.Deploy.Command = defaultDeployCommand
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
