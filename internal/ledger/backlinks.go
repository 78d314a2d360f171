package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// AddBacklinkPost appends one backlink record. A missing ID is assigned.
func (s *Store) AddBacklinkPost(ctx context.Context, post *BacklinkPost) error {
	if post == nil {
		return errors.New("backlink post is nil")
	}
	if post.ArticleSlug == "" {
		return errors.New("backlink post has no article slug")
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Status == "" {
		post.Status = PostStatusDraft
	}

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO backlink_posts (
            id, article_slug, platform, post_ref, title, posted_at, target_url, status
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.ArticleSlug,
		post.Platform,
		post.PostRef,
		post.Title,
		formatTime(post.PostedAt),
		post.TargetURL,
		string(post.Status),
	)
	if err != nil {
		return fmt.Errorf("insert backlink post: %w", err)
	}
	return nil
}

// ArticlesNeedingBacklinks returns up to limit articles with no backlink
// record at all, in ledger order. One record on any platform removes the
// article from the queue permanently.
func (s *Store) ArticlesNeedingBacklinks(ctx context.Context, limit int) ([]*Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles a
         WHERE NOT EXISTS (SELECT 1 FROM backlink_posts b WHERE b.article_slug = a.slug)
         ORDER BY a.id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles needing backlinks: %w", err)
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// PlatformPostCounts returns the historical number of backlink posts per
// platform. Platforms with no posts are absent from the map.
func (s *Store) PlatformPostCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, COUNT(1) FROM backlink_posts GROUP BY platform`)
	if err != nil {
		return nil, fmt.Errorf("count platform posts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			platform string
			count    int
		)
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, err
		}
		counts[platform] = count
	}
	return counts, rows.Err()
}

// BacklinkPostCount returns the total number of backlink records.
func (s *Store) BacklinkPostCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM backlink_posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count backlink posts: %w", err)
	}
	return count, nil
}

// BacklinkPostsForArticle returns the records for one article, oldest first.
func (s *Store) BacklinkPostsForArticle(ctx context.Context, slug string) ([]*BacklinkPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, article_slug, platform, post_ref, title, posted_at, target_url, status
         FROM backlink_posts WHERE article_slug = ? ORDER BY posted_at`, slug)
	if err != nil {
		return nil, fmt.Errorf("list backlink posts: %w", err)
	}
	defer rows.Close()

	var posts []*BacklinkPost
	for rows.Next() {
		var (
			post   BacklinkPost
			posted string
			status string
		)
		if err := rows.Scan(&post.ID, &post.ArticleSlug, &post.Platform, &post.PostRef,
			&post.Title, &posted, &post.TargetURL, &status); err != nil {
			return nil, err
		}
		if post.PostedAt, err = parseTime(posted); err != nil {
			return nil, fmt.Errorf("decode posted_at for %s: %w", post.ID, err)
		}
		post.Status = PostStatus(status)
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}
