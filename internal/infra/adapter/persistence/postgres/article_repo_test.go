package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newscrawl/internal/domain/entity"
	"newscrawl/internal/repository"
)

func newMockRepo(t *testing.T) (repository.ArticleRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewArticleRepo(db), mock
}

func sampleArticle() *entity.Article {
	published := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	a := &entity.Article{
		URL:             "https://example.com/content/abc",
		Title:           "A headline",
		Content:         "Body text of the article.",
		Author:          "Jane Reporter",
		Subtitle:        "A standfirst",
		ImageURL:        "https://example.com/img.jpg",
		PublishedAt:     &published,
		Tags:            []string{"markets", "tech"},
		RelatedArticles: []string{"https://example.com/content/def"},
	}
	a.DeriveReadingTime(400)
	return a
}

func TestArticleRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	article := sampleArticle()
	scrapedAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs(
			article.URL, article.Title, article.Content,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			article.PublishedAt, sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "scraped_at"}).AddRow(int64(42), scrapedAt))

	require.NoError(t, repo.Create(context.Background(), article))
	assert.Equal(t, int64(42), article.ID)
	assert.Equal(t, scrapedAt, article.ScrapedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_Create_DuplicateURL(t *testing.T) {
	repo, mock := newMockRepo(t)
	article := sampleArticle()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "articles_url_key"})

	err := repo.Create(context.Background(), article)
	assert.ErrorIs(t, err, entity.ErrDuplicateURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_Create_StoreFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	article := sampleArticle()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), article)
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrDuplicateURL)
}

func TestArticleRepo_CountArticles(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.CountArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestArticleRepo_ExistsByURL(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM articles WHERE url = $1)")).
		WithArgs("https://example.com/content/abc").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByURL(context.Background(), "https://example.com/content/abc")
	require.NoError(t, err)
	assert.True(t, exists)
}

func articleRows() *sqlmock.Rows {
	published := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "url", "title", "content", "author", "subtitle", "image_url",
		"published_at", "scraped_at", "tags", "related_articles", "word_count", "reading_time_min",
	}).AddRow(
		int64(1), "https://example.com/content/abc", "A headline", "Body text.",
		"Jane Reporter", nil, nil, published, time.Now(),
		[]byte(`["markets","tech"]`), nil, int64(400), int64(2),
	)
}

func TestArticleRepo_ListRecent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("ORDER BY published_at DESC NULLS LAST").
		WithArgs(50).
		WillReturnRows(articleRows())

	articles, err := repo.ListRecent(context.Background(), repository.ArticleListFilters{})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "A headline", articles[0].Title)
	assert.Equal(t, []string{"markets", "tech"}, articles[0].Tags)
	assert.Empty(t, articles[0].Subtitle)
	assert.Equal(t, 400, articles[0].WordCount)
	assert.Equal(t, 2, articles[0].ReadingTimeMin)
	require.NotNil(t, articles[0].PublishedAt)
}

func TestArticleRepo_ListRecent_TitleFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("title ILIKE").
		WithArgs("headline", 10).
		WillReturnRows(articleRows())

	articles, err := repo.ListRecent(context.Background(), repository.ArticleListFilters{
		TitleQuery: "headline",
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}
