package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Site identifies the published site.
type Site struct {
	BaseURL string `toml:"base_url"`
	Name    string `toml:"name"`
	LogoURL string `toml:"logo_url"`
}

// Content contains article generation and scheduling settings.
type Content struct {
	PublishIntervalHours int  `toml:"publish_interval_hours"`
	GenerateDelaySeconds int  `toml:"generate_delay_seconds"`
	CreateBacklinks      bool `toml:"create_backlinks"`
	MaxBacklinksPerRun   int  `toml:"max_backlinks_per_run"`
}

// AI contains the chat-completions API connection settings.
type AI struct {
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// Images contains stock photo API settings.
type Images struct {
	UnsplashAccessKey string `toml:"unsplash_access_key"`
	PixabayAPIKey     string `toml:"pixabay_api_key"`
	PerArticle        int    `toml:"per_article"`
	SearchPerPage     int    `toml:"search_per_page"`
	SearchDelayMS     int    `toml:"search_delay_ms"`
}

// Medium contains Medium API credentials.
type Medium struct {
	APIKey string `toml:"api_key"`
}

// DevTo contains Dev.to API credentials.
type DevTo struct {
	APIKey string `toml:"api_key"`
}

// Blogger contains Blogger API credentials.
type Blogger struct {
	APIKey string `toml:"api_key"`
	BlogID string `toml:"blog_id"`
}

// Platforms contains backlink platform credentials and posting pace.
type Platforms struct {
	Medium          Medium   `toml:"medium"`
	DevTo           DevTo    `toml:"dev_to"`
	Blogger         Blogger  `toml:"blogger"`
	Rotation        []string `toml:"rotation"`
	PostDelayMinSec int      `toml:"post_delay_min_seconds"`
	PostDelayMaxSec int      `toml:"post_delay_max_seconds"`
}

// Build contains the external static site build settings.
type Build struct {
	Command   string `toml:"command"`
	OutputDir string `toml:"output_dir"`
}

// Deploy contains deployment settings.
type Deploy struct {
	Command    string `toml:"command"`
	AutoDeploy bool   `toml:"auto_deploy"`
}

// Workflow contains continuous-mode timing settings.
type Workflow struct {
	PollInterval       int `toml:"poll_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Paths contains directory and data file configuration.
type Paths struct {
	DataDir        string `toml:"data_dir"`
	SiteDir        string `toml:"site_dir"`
	ImagesDir      string `toml:"images_dir"`
	CategoriesFile string `toml:"categories_file"`
	TopicsFile     string `toml:"topics_file"`
}

// Config encapsulates all configuration values for moneypress.
//
// Configuration sections by subsystem:
//   - Site: base URL and publisher identity for canonical links
//   - Content: publish cadence and backlink feature toggles
//   - AI: chat-completions API used for articles, teasers, topic variations
//   - Images: Unsplash/Pixabay credentials and selection pace
//   - Platforms: Medium/Dev.to/Blogger credentials and posting delays
//   - Build: external static site build command
//   - Deploy: deployment command and auto-deploy toggle
//   - Workflow: continuous-mode polling intervals
//   - Logging: log format and level
//   - Paths: data dir, site dir, image output, backlog files
type Config struct {
	Site      Site      `toml:"site"`
	Content   Content   `toml:"content"`
	AI        AI        `toml:"ai"`
	Images    Images    `toml:"images"`
	Platforms Platforms `toml:"platforms"`
	Build     Build     `toml:"build"`
	Deploy    Deploy    `toml:"deploy"`
	Workflow  Workflow  `toml:"workflow"`
	Logging   Logging   `toml:"logging"`
	Paths     Paths     `toml:"paths"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/moneypress/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("moneypress.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for pipeline operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ImagesDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the ledger database location under the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "moneypress.db")
}

// LockPath returns the single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "moneypress.lock")
}

// PIDPath returns the continuous-mode pid file location.
func (c *Config) PIDPath() string {
	return filepath.Join(c.Paths.DataDir, "moneypress.pid")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
