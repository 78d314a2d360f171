// Package backlinks drafts short teaser posts on external platforms, each
// linking back to one published article. Every article gets at most one
// backlink attempt; platforms rotate toward the least-used one.
package backlinks

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/logging"
	"moneypress/internal/platforms"
	"moneypress/internal/services/openai"
)

const teaserPrompt = `
Write a 300-word informative article about %s that provides value to readers.

Requirements:
- Make it engaging and informative
- Include 1 natural link to the full article: %s
- Use a slightly different angle than the main article
- Keep it conversational and helpful
- Include actionable tips
- Don't make it overly promotional

The article should stand alone as valuable content while encouraging readers to learn more from the detailed guide.
`

// TextGenerator is the single AI operation the publisher needs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts openai.GenerateOptions) (string, error)
}

// Publisher posts backlink drafts for articles that have none yet.
type Publisher struct {
	store   *ledger.Store
	ai      TextGenerator
	clients []platforms.Client
	cfg     *config.Config
	logger  *slog.Logger

	sleep func(time.Duration)
	rng   *rand.Rand
}

// NewPublisher constructs a publisher over the given platform clients.
func NewPublisher(store *ledger.Store, ai TextGenerator, clients []platforms.Client, cfg *config.Config, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Publisher{
		store:   store,
		ai:      ai,
		clients: clients,
		cfg:     cfg,
		logger:  logger,
		sleep:   time.Sleep,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ProcessQueue drafts backlinks for up to maxPosts articles and returns the
// number of posts created. Per-article failures are logged and skipped; the
// queue run itself never fails.
func (p *Publisher) ProcessQueue(ctx context.Context, maxPosts int) int {
	if !p.cfg.Content.CreateBacklinks {
		p.logger.Info("backlink creation disabled")
		return 0
	}
	if len(p.clients) == 0 {
		p.logger.Warn("no backlink platforms configured")
		return 0
	}

	queue, err := p.store.ArticlesNeedingBacklinks(ctx, maxPosts)
	if err != nil {
		p.logger.Error("loading backlink queue failed", logging.Error(err))
		return 0
	}
	if len(queue) == 0 {
		p.logger.Info("no articles need backlinks")
		return 0
	}

	created := 0
	for _, article := range queue {
		if err := p.postBacklink(ctx, article); err != nil {
			p.logger.Warn("backlink failed",
				slog.String(logging.FieldArticle, article.Slug),
				logging.Error(err))
			continue
		}
		created++
		p.sleep(p.postDelay())
	}

	p.logger.Info("backlink queue processed", slog.Int("created", created))
	return created
}

func (p *Publisher) postBacklink(ctx context.Context, article *ledger.Article) error {
	client, err := p.selectPlatform(ctx)
	if err != nil {
		return err
	}
	platform := client.Name()

	teaser, err := p.ai.Generate(ctx, fmt.Sprintf(teaserPrompt, article.Title, article.URL), openai.GenerateOptions{
		Model:       p.cfg.AI.Model,
		MaxTokens:   800,
		Temperature: 0.8,
	})
	if err != nil {
		return fmt.Errorf("generate teaser: %w", err)
	}

	title := "Quick Guide: " + article.Title
	draft := platforms.Draft{
		Title: title,
		Body:  formatBody(platform, title, teaser, article, p.cfg.Site.Name),
		Tags:  platformTags(platform),
	}

	ref, err := client.CreateDraft(ctx, draft)
	if err != nil {
		return fmt.Errorf("create draft on %s: %w", platform, err)
	}

	post := &ledger.BacklinkPost{
		ArticleSlug: article.Slug,
		Platform:    platform,
		PostRef:     ref.Ref(),
		Title:       title,
		PostedAt:    time.Now().UTC(),
		TargetURL:   article.URL,
		Status:      ledger.PostStatusDraft,
	}
	if err := p.store.AddBacklinkPost(ctx, post); err != nil {
		return fmt.Errorf("record post: %w", err)
	}

	p.logger.Info("backlink posted",
		slog.String(logging.FieldArticle, article.Slug),
		slog.String(logging.FieldPlatform, platform))
	return nil
}

// selectPlatform picks the configured client with the fewest historical
// posts; ties go to the earliest client in rotation order.
func (p *Publisher) selectPlatform(ctx context.Context) (platforms.Client, error) {
	counts, err := p.store.PlatformPostCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load platform counts: %w", err)
	}

	best := p.clients[0]
	for _, client := range p.clients[1:] {
		if counts[client.Name()] < counts[best.Name()] {
			best = client
		}
	}
	return best, nil
}

// postDelay spreads posts out to stay under platform rate limits.
func (p *Publisher) postDelay() time.Duration {
	minSec := p.cfg.Platforms.PostDelayMinSec
	maxSec := p.cfg.Platforms.PostDelayMaxSec
	if maxSec <= minSec {
		return time.Duration(minSec) * time.Second
	}
	seconds := float64(minSec) + p.rng.Float64()*float64(maxSec-minSec)
	return time.Duration(seconds * float64(time.Second))
}
