// Package repository declares the persistence interfaces consumed by the
// use case layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"newscrawl/internal/domain/entity"
)

// ArticleListFilters contains optional filters for article listing.
type ArticleListFilters struct {
	// TitleQuery filters case-insensitively on a title substring when non-empty.
	TitleQuery string
	// Limit caps the number of returned rows; 0 means the repository default.
	Limit int
}

// ArticleRepository persists extracted articles keyed by URL.
//
// Persisted rows are immutable: Create either inserts a new row or reports
// entity.ErrDuplicateURL when the URL is already stored. Cross-run
// deduplication relies entirely on that uniqueness constraint.
type ArticleRepository interface {
	// Create inserts the article and fills in the store-assigned ID and
	// ScrapedAt. Returns entity.ErrDuplicateURL when a row with the same URL
	// exists; any other error is a store-level failure.
	Create(ctx context.Context, article *entity.Article) error
	// Get retrieves an article by ID. Returns (nil, nil) when not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// ListRecent returns articles ordered by published time descending, with
	// articles lacking a publish time last.
	ListRecent(ctx context.Context, filters ArticleListFilters) ([]*entity.Article, error)
	// CountArticles returns the total number of stored articles. The scheduler
	// uses a zero count to decide whether a bootstrap run is needed.
	CountArticles(ctx context.Context) (int64, error)
	// ExistsByURL reports whether an article with the given URL is stored.
	ExistsByURL(ctx context.Context, url string) (bool, error)
}
