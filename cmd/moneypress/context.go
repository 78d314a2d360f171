package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"moneypress/internal/articles"
	"moneypress/internal/backlinks"
	"moneypress/internal/catalog"
	"moneypress/internal/config"
	"moneypress/internal/deploy"
	"moneypress/internal/images"
	"moneypress/internal/ledger"
	"moneypress/internal/logging"
	"moneypress/internal/platforms"
	"moneypress/internal/services/openai"
	"moneypress/internal/services/pixabay"
	"moneypress/internal/services/unsplash"
	"moneypress/internal/sitebuild"
	"moneypress/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withManager builds the full pipeline and hands it to fn, closing the
// ledger when fn returns.
func (c *commandContext) withManager(fn func(cfg *config.Config, manager *workflow.Manager, store *ledger.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewForDataDir(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.DataDir)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	store, err := ledger.OpenPath(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()

	manager, err := buildManager(cfg, store, logger)
	if err != nil {
		return err
	}
	return fn(cfg, manager, store)
}

// buildManager wires every pipeline stage from configuration. Missing
// optional credentials leave the corresponding provider unset; the stages
// degrade on their own.
func buildManager(cfg *config.Config, store *ledger.Store, logger *slog.Logger) (*workflow.Manager, error) {
	cat, warnings, err := catalog.Load(cfg.Paths.CategoriesFile, cfg.Paths.TopicsFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, warning := range warnings {
		logger.Warn("catalog warning", slog.String("detail", warning))
	}

	var ai *openai.Client
	if credentialConfigured(cfg.AI.APIKey) {
		ai = openai.NewClient(cfg.AI.APIKey,
			openai.WithBaseURL(cfg.AI.BaseURL),
			openai.WithModel(cfg.AI.Model))
	} else {
		return nil, fmt.Errorf("ai api key not configured (set ai.api_key or OPENAI_API_KEY)")
	}

	selector := articles.NewSelector(store, cat, ai, cfg.AI.Model, logger)
	assembler := articles.NewAssembler(store, ai, cfg, logger)

	var photoSearcher images.PhotoSearcher
	if credentialConfigured(cfg.Images.UnsplashAccessKey) {
		photoSearcher = unsplash.NewClient(cfg.Images.UnsplashAccessKey)
	}
	var imageSearcher images.ImageSearcher
	if credentialConfigured(cfg.Images.PixabayAPIKey) {
		imageSearcher = pixabay.NewClient(cfg.Images.PixabayAPIKey)
	}
	pipeline := images.NewPipeline(store, photoSearcher, imageSearcher, cfg, logger)

	clients := platforms.Configured(cfg)
	publisher := backlinks.NewPublisher(store, ai, clients, cfg, logger)

	builder := sitebuild.NewBuilder(cfg, store, cat, logger)
	deployer := deploy.NewDeployer(cfg, logger)

	return workflow.NewManager(cfg, store, selector, assembler, pipeline, publisher, builder, deployer, logger), nil
}

func credentialConfigured(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && !strings.HasPrefix(trimmed, config.PlaceholderCredential)
}
