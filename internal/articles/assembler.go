package articles

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"moneypress/internal/catalog"
	"moneypress/internal/config"
	"moneypress/internal/ledger"
	"moneypress/internal/logging"
	"moneypress/internal/services/openai"
	"moneypress/internal/textutil"
)

const recentLinkWindow = 10

// Assembler generates one article per call and derives its publishing
// metadata. The produced record is not persisted; the caller owns that.
type Assembler struct {
	store  *ledger.Store
	ai     TextGenerator
	cfg    *config.Config
	logger *slog.Logger
	rng    *rand.Rand
}

// NewAssembler constructs an assembler.
func NewAssembler(store *ledger.Store, ai TextGenerator, cfg *config.Config, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{
		store:  store,
		ai:     ai,
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate writes one article for the topic and returns the complete record.
func (a *Assembler) Generate(ctx context.Context, category *catalog.Category, topic string) (*ledger.Article, error) {
	a.logger.Info("generating article",
		slog.String(logging.FieldArticle, topic),
		slog.String(logging.FieldCategory, category.Slug))

	moneyPages := []string{category.CompareURL, category.BestURL}
	moneyPageURL := moneyPages[a.rng.Intn(len(moneyPages))]
	relatedURL, err := a.relatedArticleURL(ctx, category.Slug)
	if err != nil {
		return nil, err
	}

	template := articleTemplates[a.rng.Intn(len(articleTemplates))]
	prompt := fillTemplate(template, topic, category.Name, moneyPageURL, relatedURL)

	content, err := a.ai.Generate(ctx, prompt, openai.GenerateOptions{
		Model:       a.cfg.AI.Model,
		MaxTokens:   a.cfg.AI.MaxTokens,
		Temperature: a.cfg.AI.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("articles: generate content: %w", err)
	}

	content, err = a.processContent(ctx, content)
	if err != nil {
		return nil, err
	}

	return a.buildArticle(ctx, category, topic, content)
}

// processContent normalizes raw model output: wraps it in an <article>
// element, injects image placeholders when the model produced none, and adds
// at most one internal link to a recent article.
func (a *Assembler) processContent(ctx context.Context, raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if !strings.HasPrefix(content, "<article>") {
		content = "<article>\n" + content + "\n</article>"
	}

	if !strings.Contains(content, "[IMAGE:") {
		content = injectImagePlaceholders(content)
	}

	recent, err := a.store.RecentArticles(ctx, recentLinkWindow)
	if err != nil {
		return "", fmt.Errorf("articles: load recent articles: %w", err)
	}
	return addInternalLink(content, recent), nil
}

func (a *Assembler) buildArticle(ctx context.Context, category *catalog.Category, topic, content string) (*ledger.Article, error) {
	published, err := a.store.Articles(ctx)
	if err != nil {
		return nil, fmt.Errorf("articles: load published: %w", err)
	}

	slug, err := a.uniqueSlug(ctx, textutil.Slugify(topic))
	if err != nil {
		return nil, err
	}
	clean := textutil.CleanHTML(content)
	keywords := extractKeywords(content)
	now := time.Now().UTC()

	return &ledger.Article{
		Slug:              slug,
		Title:             topic,
		CategoryID:        category.ID,
		CategorySlug:      category.Slug,
		CategoryName:      category.Name,
		Content:           content,
		MetaDescription:   textutil.SentenceBudget(clean, metaDescriptionMax),
		Keywords:          keywords,
		Tags:              generateTags(category, keywords),
		URL:               a.canonicalURL(category.Slug, slug),
		ReadTime:          textutil.ReadTime(content),
		WordCount:         textutil.WordCount(content),
		Excerpt:           textutil.SentenceBudget(clean, excerptMax),
		RelatedSlugs:      findRelatedSlugs(category.Slug, topic, published),
		ImagePlaceholders: extractImagePlaceholders(content),
		DatePublished:     now,
		DateModified:      now,
	}, nil
}

// uniqueSlug resolves slug collisions by suffixing a counter. Distinct titles
// can slugify identically ("Best Cards 2025" vs "Best Cards 2025!"), and the
// articles table enforces slug uniqueness, so a colliding insert would fail on
// every attempt.
func (a *Assembler) uniqueSlug(ctx context.Context, slug string) (string, error) {
	candidate := slug
	for i := 2; ; i++ {
		taken, err := a.store.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("articles: check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

func (a *Assembler) canonicalURL(categorySlug, slug string) string {
	return fmt.Sprintf("%s/%s/%s", a.cfg.Site.BaseURL, categorySlug, slug)
}

// relatedArticleURL picks an internal-link target: a random same-category
// article, then any article, then the bare category page.
func (a *Assembler) relatedArticleURL(ctx context.Context, categorySlug string) (string, error) {
	sameCategory, err := a.store.ArticlesByCategory(ctx, categorySlug)
	if err != nil {
		return "", fmt.Errorf("articles: load category articles: %w", err)
	}
	if len(sameCategory) > 0 {
		return sameCategory[a.rng.Intn(len(sameCategory))].URL, nil
	}

	all, err := a.store.Articles(ctx)
	if err != nil {
		return "", fmt.Errorf("articles: load published: %w", err)
	}
	if len(all) > 0 {
		return all[a.rng.Intn(len(all))].URL, nil
	}
	return a.cfg.Site.BaseURL + "/" + categorySlug, nil
}
