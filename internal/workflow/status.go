package workflow

import (
	"context"
	"fmt"
	"time"
)

// Status is a point-in-time summary of the pipeline, shaped for both table
// rendering and JSON output.
type Status struct {
	TotalArticles     int            `json:"total_articles"`
	ArticlesToday     int            `json:"articles_today"`
	TotalBacklinks    int            `json:"total_backlinks"`
	PlatformBreakdown map[string]int `json:"platform_breakdown"`
	LastPublished     *time.Time     `json:"last_published,omitempty"`
	NextPublish       time.Time      `json:"next_scheduled_publish"`
	CreateBacklinks   bool           `json:"create_backlinks"`
	AutoDeploy        bool           `json:"auto_deploy"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

// Status assembles the current pipeline summary from the ledger.
func (m *Manager) Status(ctx context.Context) (*Status, error) {
	now := m.clock()

	total, err := m.store.ArticleCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("workflow: article count: %w", err)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := m.store.ArticlesPublishedSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("workflow: articles today: %w", err)
	}

	backlinks, err := m.store.BacklinkPostCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("workflow: backlink count: %w", err)
	}
	breakdown, err := m.store.PlatformPostCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("workflow: platform counts: %w", err)
	}

	last, err := m.store.LastPublishedAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("workflow: last published: %w", err)
	}
	_, next, err := m.ShouldPublishNow(ctx, now)
	if err != nil {
		return nil, err
	}

	status := &Status{
		TotalArticles:     total,
		ArticlesToday:     today,
		TotalBacklinks:    backlinks,
		PlatformBreakdown: breakdown,
		NextPublish:       next,
		CreateBacklinks:   m.cfg.Content.CreateBacklinks,
		AutoDeploy:        m.cfg.Deploy.AutoDeploy,
		GeneratedAt:       now,
	}
	if !last.IsZero() {
		status.LastPublished = &last
	}
	return status, nil
}
