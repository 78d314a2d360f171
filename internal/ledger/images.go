package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SaveImageSet records the resolved images for an article, replacing any
// previous entry for the same slug.
func (s *Store) SaveImageSet(ctx context.Context, set *ImageSet) error {
	if set == nil {
		return errors.New("image set is nil")
	}
	if set.ArticleSlug == "" {
		return errors.New("image set has no article slug")
	}

	images, err := json.Marshal(set.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}
	terms, err := marshalStrings(set.SearchTerms)
	if err != nil {
		return fmt.Errorf("marshal search terms: %w", err)
	}

	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO image_sets (article_slug, images_json, search_terms_json, processed_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(article_slug) DO UPDATE SET
            images_json = excluded.images_json,
            search_terms_json = excluded.search_terms_json,
            processed_at = excluded.processed_at`,
		set.ArticleSlug,
		string(images),
		terms,
		formatTime(set.ProcessedAt),
	)
	if err != nil {
		return fmt.Errorf("save image set: %w", err)
	}
	return nil
}

// ImageSetBySlug fetches the cached image resolution for an article, or nil
// when the article has not been processed yet.
func (s *Store) ImageSetBySlug(ctx context.Context, slug string) (*ImageSet, error) {
	var (
		set       ImageSet
		images    string
		terms     string
		processed string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT article_slug, images_json, search_terms_json, processed_at
         FROM image_sets WHERE article_slug = ?`, slug).
		Scan(&set.ArticleSlug, &images, &terms, &processed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get image set: %w", err)
	}

	if err := json.Unmarshal([]byte(images), &set.Images); err != nil {
		return nil, fmt.Errorf("decode images for %s: %w", slug, err)
	}
	if set.SearchTerms, err = unmarshalStrings(terms); err != nil {
		return nil, fmt.Errorf("decode search terms for %s: %w", slug, err)
	}
	if set.ProcessedAt, err = parseTime(processed); err != nil {
		return nil, fmt.Errorf("decode processed_at for %s: %w", slug, err)
	}
	return &set, nil
}
