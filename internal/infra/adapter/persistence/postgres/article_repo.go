// Package postgres implements the repository interfaces on PostgreSQL
// using database/sql over the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"newscrawl/internal/domain/entity"
	"newscrawl/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// defaultListLimit caps ListRecent when the caller does not specify a limit.
const defaultListLimit = 50

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// Create inserts the article and fills in the store-assigned ID and ScrapedAt.
// A unique violation on the url column is mapped to entity.ErrDuplicateURL so
// callers can treat re-discovered articles as an expected outcome.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
	   (url, title, content, author, subtitle, image_url, published_at,
	    tags, related_articles, word_count, reading_time_min)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, scraped_at`

	tags, err := marshalTextList(article.Tags)
	if err != nil {
		return fmt.Errorf("Create: marshal tags: %w", err)
	}
	related, err := marshalTextList(article.RelatedArticles)
	if err != nil {
		return fmt.Errorf("Create: marshal related articles: %w", err)
	}

	err = repo.db.QueryRowContext(ctx, query,
		article.URL, article.Title, article.Content,
		nullString(article.Author), nullString(article.Subtitle), nullString(article.ImageURL),
		article.PublishedAt, tags, related,
		nullInt(article.WordCount), nullInt(article.ReadingTimeMin),
	).Scan(&article.ID, &article.ScrapedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrDuplicateURL
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	row := repo.db.QueryRowContext(ctx, query, id)
	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

// ListRecent returns articles ordered by published time descending, with
// unknown publish times last. TitleQuery is pushed into SQL as a
// case-insensitive substring match.
func (repo *ArticleRepo) ListRecent(ctx context.Context, filters repository.ArticleListFilters) ([]*entity.Article, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := articleColumns + `
FROM articles`
	args := []any{}
	if filters.TitleQuery != "" {
		query += `
WHERE title ILIKE '%' || $1 || '%'`
		args = append(args, filters.TitleQuery)
	}
	query += fmt.Sprintf(`
ORDER BY published_at DESC NULLS LAST, scraped_at DESC
LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecent: Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) CountArticles(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountArticles: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM articles WHERE url = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, url).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByURL: %w", err)
	}
	return exists, nil
}

const articleColumns = `
SELECT id, url, title, content, author, subtitle, image_url, published_at,
       scraped_at, tags, related_articles, word_count, reading_time_min`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (*entity.Article, error) {
	var (
		article     entity.Article
		author      sql.NullString
		subtitle    sql.NullString
		imageURL    sql.NullString
		publishedAt sql.NullTime
		tags        []byte
		related     []byte
		wordCount   sql.NullInt64
		readingTime sql.NullInt64
	)
	if err := s.Scan(&article.ID, &article.URL, &article.Title, &article.Content,
		&author, &subtitle, &imageURL, &publishedAt, &article.ScrapedAt,
		&tags, &related, &wordCount, &readingTime); err != nil {
		return nil, err
	}

	article.Author = author.String
	article.Subtitle = subtitle.String
	article.ImageURL = imageURL.String
	if publishedAt.Valid {
		t := publishedAt.Time
		article.PublishedAt = &t
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &article.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if len(related) > 0 {
		if err := json.Unmarshal(related, &article.RelatedArticles); err != nil {
			return nil, fmt.Errorf("unmarshal related articles: %w", err)
		}
	}
	article.WordCount = int(wordCount.Int64)
	article.ReadingTimeMin = int(readingTime.Int64)
	return &article, nil
}

// marshalTextList encodes a string slice as JSONB, mapping empty to NULL.
func marshalTextList(values []string) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}
