package articles

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"moneypress/internal/catalog"
	"moneypress/internal/ledger"
	"moneypress/internal/logging"
	"moneypress/internal/services/openai"
)

// TextGenerator is the single AI operation the article pipeline needs.
// *openai.Client satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts openai.GenerateOptions) (string, error)
}

// Selector picks the next topic to write about. Backlog topics are consumed
// in category order then topic order; a topic is skipped only when an article
// with exactly that title already exists in the ledger.
type Selector struct {
	store   *ledger.Store
	catalog *catalog.Catalog
	ai      TextGenerator
	model   string
	logger  *slog.Logger
	rng     *rand.Rand
}

// NewSelector constructs a selector over the ledger and backlog.
func NewSelector(store *ledger.Store, cat *catalog.Catalog, ai TextGenerator, model string, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Selector{
		store:   store,
		catalog: cat,
		ai:      ai,
		model:   model,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NextTopic returns the next unwritten backlog topic. When every backlog
// topic has been written it falls back to an AI-synthesized variation; a
// (nil, "", nil) result means nothing can be generated this cycle.
func (s *Selector) NextTopic(ctx context.Context) (*catalog.Category, string, error) {
	for _, group := range s.catalog.Groups {
		category := s.catalog.CategoryByID(group.CategoryID)
		if category == nil {
			continue
		}
		for _, topic := range group.Topics {
			exists, err := s.store.TitleExists(ctx, topic)
			if err != nil {
				return nil, "", fmt.Errorf("articles: check title: %w", err)
			}
			if !exists {
				return category, topic, nil
			}
		}
	}

	s.logger.Info("topic backlog exhausted, generating variation")
	return s.topicVariation(ctx)
}

func (s *Selector) topicVariation(ctx context.Context) (*catalog.Category, string, error) {
	if len(s.catalog.Categories) == 0 {
		return nil, "", nil
	}
	category := &s.catalog.Categories[s.rng.Intn(len(s.catalog.Categories))]
	prompt := fmt.Sprintf(variationPrompts[s.rng.Intn(len(variationPrompts))], strings.ToLower(category.Name))

	topic, err := s.ai.Generate(ctx, prompt, openai.GenerateOptions{
		Model:       s.model,
		MaxTokens:   100,
		Temperature: 0.8,
	})
	if err != nil {
		s.logger.Warn("topic variation failed", logging.Error(err))
		return nil, "", nil
	}

	topic = strings.TrimSpace(topic)
	if len(topic) >= 2 && strings.HasPrefix(topic, `"`) && strings.HasSuffix(topic, `"`) {
		topic = topic[1 : len(topic)-1]
	}
	return category, topic, nil
}
