package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Only hard errors are
// reported here; missing optional credentials are preflight warnings.
func (c *Config) Validate() error {
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validateContent(); err != nil {
		return err
	}
	if err := c.validateAI(); err != nil {
		return err
	}
	if err := c.validatePlatforms(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSite() error {
	if !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return fmt.Errorf("site.base_url must start with http:// or https://, got %q", c.Site.BaseURL)
	}
	return nil
}

func (c *Config) validateContent() error {
	return ensurePositiveMap(map[string]int{
		"content.publish_interval_hours": c.Content.PublishIntervalHours,
		"content.max_backlinks_per_run":  c.Content.MaxBacklinksPerRun,
	})
}

func (c *Config) validateAI() error {
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return errors.New("ai.temperature must be between 0 and 2")
	}
	if c.AI.MaxTokens <= 0 {
		return errors.New("ai.max_tokens must be positive")
	}
	return nil
}

func (c *Config) validatePlatforms() error {
	known := map[string]bool{"medium": true, "dev_to": true, "blogger": true}
	seen := map[string]bool{}
	for _, name := range c.Platforms.Rotation {
		if !known[name] {
			return fmt.Errorf("platforms.rotation: unknown platform %q", name)
		}
		if seen[name] {
			return fmt.Errorf("platforms.rotation: duplicate platform %q", name)
		}
		seen[name] = true
	}
	if c.Platforms.PostDelayMaxSec < c.Platforms.PostDelayMinSec {
		return errors.New("platforms.post_delay_max_seconds must be >= platforms.post_delay_min_seconds")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	return ensurePositiveMap(map[string]int{
		"workflow.poll_interval":        c.Workflow.PollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
