// Package workflow orchestrates the publishing pipeline: topic selection,
// article generation, image processing, site builds, backlink posting, and
// deployment. Every collaborator is injected at construction so the manager
// owns sequencing, not wiring.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"moneypress/internal/catalog"
	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/logging"
)

// TopicSelector yields the next topic to write about.
type TopicSelector interface {
	NextTopic(ctx context.Context) (*catalog.Category, string, error)
}

// ArticleAssembler generates one complete article record.
type ArticleAssembler interface {
	Generate(ctx context.Context, category *catalog.Category, topic string) (*ledger.Article, error)
}

// ImageProcessor resolves the image set for one article.
type ImageProcessor interface {
	Process(ctx context.Context, article *ledger.Article) (*ledger.ImageSet, error)
}

// BacklinkPublisher drafts backlink posts for queued articles.
type BacklinkPublisher interface {
	ProcessQueue(ctx context.Context, maxPosts int) int
}

// SiteBuilder rebuilds the static site.
type SiteBuilder interface {
	Build(ctx context.Context) error
}

// SiteDeployer pushes the built site to its host.
type SiteDeployer interface {
	Deploy(ctx context.Context) error
}

// Manager coordinates the full publishing pipeline.
type Manager struct {
	cfg       *config.Config
	store     *ledger.Store
	selector  TopicSelector
	assembler ArticleAssembler
	images    ImageProcessor
	backlinks BacklinkPublisher
	builder   SiteBuilder
	deployer  SiteDeployer
	logger    *slog.Logger

	clock func() time.Time
	sleep func(time.Duration)
}

// NewManager constructs a workflow manager from its collaborators.
func NewManager(
	cfg *config.Config,
	store *ledger.Store,
	selector TopicSelector,
	assembler ArticleAssembler,
	images ImageProcessor,
	backlinks BacklinkPublisher,
	builder SiteBuilder,
	deployer SiteDeployer,
	logger *slog.Logger,
) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		cfg:       cfg,
		store:     store,
		selector:  selector,
		assembler: assembler,
		images:    images,
		backlinks: backlinks,
		builder:   builder,
		deployer:  deployer,
		logger:    logger,
		clock:     time.Now,
		sleep:     time.Sleep,
	}
}

// ShouldPublishNow reports whether the publish interval has elapsed since
// the latest ledger entry, and the next scheduled publish time. An empty
// ledger publishes immediately.
func (m *Manager) ShouldPublishNow(ctx context.Context, now time.Time) (bool, time.Time, error) {
	last, err := m.store.LastPublishedAt(ctx)
	if err != nil {
		return false, time.Time{}, fmt.Errorf("workflow: last published: %w", err)
	}
	if last.IsZero() {
		return true, now, nil
	}
	next := last.Add(time.Duration(m.cfg.Content.PublishIntervalHours) * time.Hour)
	return !now.Before(next), next, nil
}

// Generate produces and persists up to count articles, pausing briefly
// between each. A selector returning no topic ends the run early; a
// generation failure aborts it.
func (m *Manager) Generate(ctx context.Context, count int) ([]*ledger.Article, error) {
	var generated []*ledger.Article
	for i := 0; i < count; i++ {
		category, topic, err := m.selector.NextTopic(ctx)
		if err != nil {
			return generated, err
		}
		if category == nil {
			m.logger.Warn("no topics available for generation")
			break
		}

		article, err := m.assembler.Generate(ctx, category, topic)
		if err != nil {
			return generated, fmt.Errorf("workflow: generate %q: %w", topic, err)
		}
		if err := m.store.AddArticle(ctx, article); err != nil {
			return generated, fmt.Errorf("workflow: save %q: %w", article.Slug, err)
		}

		m.logger.Info("article published to ledger",
			slog.String(logging.FieldArticle, article.Slug),
			slog.String(logging.FieldCategory, article.CategorySlug),
			slog.Int("word_count", article.WordCount))
		generated = append(generated, article)

		if i < count-1 {
			m.sleep(time.Duration(m.cfg.Content.GenerateDelaySeconds) * time.Second)
		}
	}
	return generated, nil
}

// RunCycle executes one full automation pass: publish gate, one article,
// images, site build, one backlink, optional deploy. Image and backlink
// problems degrade; generation and build failures abort the cycle.
func (m *Manager) RunCycle(ctx context.Context) error {
	now := m.clock()
	ok, next, err := m.ShouldPublishNow(ctx, now)
	if err != nil {
		return err
	}
	if !ok {
		m.logger.Info("not time to publish yet", slog.Time("next_publish", next))
		return nil
	}

	m.logger.Info("starting automation cycle")
	start := now

	generated, err := m.Generate(ctx, 1)
	if err != nil {
		return err
	}
	if len(generated) == 0 {
		return nil
	}

	for _, article := range generated {
		if _, err := m.images.Process(ctx, article); err != nil {
			m.logger.Warn("image processing failed",
				slog.String(logging.FieldArticle, article.Slug),
				logging.Error(err))
		}
	}

	if err := m.builder.Build(ctx); err != nil {
		return err
	}

	m.backlinks.ProcessQueue(ctx, 1)

	if m.cfg.Deploy.AutoDeploy {
		if err := m.deployer.Deploy(ctx); err != nil {
			m.logger.Warn("deploy failed", logging.Error(err))
		}
	}

	m.logger.Info("automation cycle complete",
		slog.Duration("elapsed", m.clock().Sub(start)))
	return nil
}

// Logger exposes the manager's logger for run wrappers.
func (m *Manager) Logger() *slog.Logger {
	return m.logger
}

// Build rebuilds the site from existing content.
func (m *Manager) Build(ctx context.Context) error {
	return m.builder.Build(ctx)
}

// Backlinks processes the backlink queue. A non-positive max uses the
// configured per-run cap.
func (m *Manager) Backlinks(ctx context.Context, maxPosts int) int {
	if maxPosts <= 0 {
		maxPosts = m.cfg.Content.MaxBacklinksPerRun
	}
	return m.backlinks.ProcessQueue(ctx, maxPosts)
}

// Deploy pushes the built site out.
func (m *Manager) Deploy(ctx context.Context) error {
	return m.deployer.Deploy(ctx)
}

// Run polls forever, executing a cycle per tick. Cycle errors trigger the
// longer retry interval. Returns nil once the context is canceled.
func (m *Manager) Run(ctx context.Context) error {
	m.logger.Info("workflow loop started",
		slog.Int("poll_interval_seconds", m.cfg.Workflow.PollInterval))

	for {
		delay := time.Duration(m.cfg.Workflow.PollInterval) * time.Second
		if err := m.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			m.logger.Error("automation cycle failed", logging.Error(err))
			delay = time.Duration(m.cfg.Workflow.ErrorRetryInterval) * time.Second
		}

		select {
		case <-ctx.Done():
			m.logger.Info("workflow loop stopping")
			return nil
		case <-time.After(delay):
		}
	}

	m.logger.Info("workflow loop stopping")
	return nil
}
