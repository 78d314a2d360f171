package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const articleColumns = `id, slug, title, category_id, category_slug, category_name,
    content, meta_description, keywords_json, tags_json, url, read_time,
    word_count, excerpt, related_json, images_json, date_published, date_modified`

// AddArticle appends an article to the publishing ledger.
func (s *Store) AddArticle(ctx context.Context, article *Article) error {
	if article == nil {
		return errors.New("article is nil")
	}
	if article.Slug == "" {
		return errors.New("article slug is empty")
	}

	keywords, err := marshalStrings(article.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	tags, err := marshalStrings(article.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	related, err := marshalStrings(article.RelatedSlugs)
	if err != nil {
		return fmt.Errorf("marshal related slugs: %w", err)
	}
	placeholders, err := marshalStrings(article.ImagePlaceholders)
	if err != nil {
		return fmt.Errorf("marshal image placeholders: %w", err)
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO articles (
            slug, title, category_id, category_slug, category_name,
            content, meta_description, keywords_json, tags_json, url,
            read_time, word_count, excerpt, related_json, images_json,
            date_published, date_modified
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.Slug,
		article.Title,
		article.CategoryID,
		article.CategorySlug,
		article.CategoryName,
		article.Content,
		article.MetaDescription,
		keywords,
		tags,
		article.URL,
		article.ReadTime,
		article.WordCount,
		article.Excerpt,
		related,
		placeholders,
		formatTime(article.DatePublished),
		formatTime(article.DateModified),
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	article.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// Articles returns all articles in ledger (insertion) order.
func (s *Store) Articles(ctx context.Context) ([]*Article, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
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

// ArticleBySlug fetches one article, or nil when absent.
func (s *Store) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = ?`, slug)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// TitleExists reports whether an article with the exact title is already
// in the ledger. Topic selection dedupes on title, not slug.
func (s *Store) TitleExists(ctx context.Context, title string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM articles WHERE title = ?`, title).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return count > 0, nil
}

// SlugExists reports whether an article already occupies the slug. The
// assembler uses this to suffix colliding slugs before insert.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM articles WHERE slug = ?`, slug).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

// UpdateArticleContent rewrites an article's content in place, bumping the
// modified date. Used after image placeholders are substituted.
func (s *Store) UpdateArticleContent(ctx context.Context, slug, content string) error {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE articles SET content = ?, date_modified = ? WHERE slug = ?`,
		content,
		formatTime(time.Now().UTC()),
		slug,
	)
	if err != nil {
		return fmt.Errorf("update article content: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update article content: no article with slug %q", slug)
	}
	return nil
}

// ArticleCount returns the total number of ledger articles.
func (s *Store) ArticleCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// LastPublishedAt returns the most recent publish timestamp, or the zero
// time when the ledger is empty.
func (s *Store) LastPublishedAt(ctx context.Context) (time.Time, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT MAX(date_published) FROM articles`).Scan(&raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("last published: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, nil
	}
	return parseTime(raw.String)
}

// ArticlesPublishedSince counts articles published at or after the cutoff.
func (s *Store) ArticlesPublishedSince(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM articles WHERE date_published >= ?`,
		formatTime(cutoff),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recent articles: %w", err)
	}
	return count, nil
}

// RecentArticles returns the newest limit articles, oldest first.
func (s *Store) RecentArticles(ctx context.Context, limit int) ([]*Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent articles: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(articles)-1; i < j; i, j = i+1, j-1 {
		articles[i], articles[j] = articles[j], articles[i]
	}
	return articles, nil
}

// ArticlesByCategory returns all articles in a category, ledger order.
func (s *Store) ArticlesByCategory(ctx context.Context, categorySlug string) ([]*Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE category_slug = ? ORDER BY id`, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("list category articles: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var (
		article                               Article
		keywords, tags, related, placeholders string
		published, modified                   string
	)
	err := row.Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.CategoryID,
		&article.CategorySlug,
		&article.CategoryName,
		&article.Content,
		&article.MetaDescription,
		&keywords,
		&tags,
		&article.URL,
		&article.ReadTime,
		&article.WordCount,
		&article.Excerpt,
		&related,
		&placeholders,
		&published,
		&modified,
	)
	if err != nil {
		return nil, err
	}

	if article.Keywords, err = unmarshalStrings(keywords); err != nil {
		return nil, fmt.Errorf("decode keywords for %s: %w", article.Slug, err)
	}
	if article.Tags, err = unmarshalStrings(tags); err != nil {
		return nil, fmt.Errorf("decode tags for %s: %w", article.Slug, err)
	}
	if article.RelatedSlugs, err = unmarshalStrings(related); err != nil {
		return nil, fmt.Errorf("decode related slugs for %s: %w", article.Slug, err)
	}
	if article.ImagePlaceholders, err = unmarshalStrings(placeholders); err != nil {
		return nil, fmt.Errorf("decode image placeholders for %s: %w", article.Slug, err)
	}
	if article.DatePublished, err = parseTime(published); err != nil {
		return nil, fmt.Errorf("decode publish date for %s: %w", article.Slug, err)
	}
	if article.DateModified, err = parseTime(modified); err != nil {
		return nil, fmt.Errorf("decode modified date for %s: %w", article.Slug, err)
	}
	return &article, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}
