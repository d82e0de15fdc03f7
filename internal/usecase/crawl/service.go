// Package crawl implements the crawl pipeline use case: discover article
// links from an index page, fetch and extract the articles concurrently,
// and persist the ones that pass the paywall and recency filters.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"newscrawl/internal/domain/entity"
	"newscrawl/internal/observability/logging"
	"newscrawl/internal/observability/metrics"
	"newscrawl/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// LinkDiscoverer finds candidate article links starting from an index page.
type LinkDiscoverer interface {
	DiscoverLinks(ctx context.Context, startURL string) ([]string, error)
}

// PageFetcher retrieves the HTML body of a single page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ArticleExtractor builds an article from a fetched page.
type ArticleExtractor interface {
	Extract(pageURL string, html string) *entity.Article
}

// Config holds the crawl pipeline settings.
type Config struct {
	StartURL          string
	Concurrency       int
	Since             time.Duration // recency window for regular passes
	BootstrapLookback time.Duration // recency window for bootstrap passes
}

// RunOptions control a single crawl pass.
type RunOptions struct {
	// Bootstrap widens the recency window to the bootstrap lookback,
	// used to seed an empty store.
	Bootstrap bool
}

// Stats contains counters for one crawl pass. The counters are updated
// atomically by the fetch workers.
type Stats struct {
	LinksDiscovered  int64
	PagesFetched     int64
	Saved            int64
	SkippedPaywalled int64
	SkippedStale     int64
	SkippedDuplicate int64
	Failed           int64
	Duration         time.Duration
}

// outcome is the explicit result of processing one candidate link.
type outcome int

const (
	outcomeSaved outcome = iota
	outcomePaywalled
	outcomeStale
	outcomeDuplicate
	outcomeFailed
)

// Service orchestrates crawl passes over a news site.
type Service struct {
	Discoverer LinkDiscoverer
	Fetcher    PageFetcher
	Extractor  ArticleExtractor
	Repo       repository.ArticleRepository
	config     Config
	logger     *slog.Logger

	// now is swapped in tests to pin the recency threshold.
	now func() time.Time
}

// NewService creates a crawl Service. A nil logger defaults to slog.Default().
func NewService(
	discoverer LinkDiscoverer,
	pageFetcher PageFetcher,
	extractor ArticleExtractor,
	repo repository.ArticleRepository,
	config Config,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Discoverer: discoverer,
		Fetcher:    pageFetcher,
		Extractor:  extractor,
		Repo:       repo,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// RunPass performs one full crawl pass. Individual page failures are logged
// and counted but never abort the pass; only a failed index page fetch or a
// cancelled context does.
func (s *Service) RunPass(ctx context.Context, opts RunOptions) (*Stats, error) {
	start := s.now()
	runID := uuid.New().String()
	logger := logging.WithRunID(s.logger, runID)
	stats := &Stats{}

	threshold := s.recencyThreshold(start, opts)
	logger.Info("crawl pass started",
		slog.String("start_url", s.config.StartURL),
		slog.Bool("bootstrap", opts.Bootstrap),
		slog.Time("recency_threshold", threshold))

	links, err := s.Discoverer.DiscoverLinks(ctx, s.config.StartURL)
	if err != nil {
		metrics.RecordCrawlRun(false, time.Since(start))
		return stats, fmt.Errorf("discover links: %w", err)
	}

	stats.LinksDiscovered = int64(len(links))
	metrics.RecordLinksDiscovered(len(links))

	if err := s.processLinks(ctx, logger, links, threshold, stats); err != nil {
		metrics.RecordCrawlRun(false, time.Since(start))
		return stats, err
	}

	stats.Duration = time.Since(start)
	metrics.RecordCrawlRun(true, stats.Duration)
	s.updateArticleGauge(ctx, logger)

	logger.Info("crawl pass completed",
		slog.Int64("links_discovered", stats.LinksDiscovered),
		slog.Int64("pages_fetched", stats.PagesFetched),
		slog.Int64("saved", stats.Saved),
		slog.Int64("skipped_paywalled", stats.SkippedPaywalled),
		slog.Int64("skipped_stale", stats.SkippedStale),
		slog.Int64("skipped_duplicate", stats.SkippedDuplicate),
		slog.Int64("failed", stats.Failed),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// recencyThreshold computes the oldest published time a crawled article may
// carry and still be persisted.
func (s *Service) recencyThreshold(now time.Time, opts RunOptions) time.Time {
	if opts.Bootstrap {
		return now.Add(-s.config.BootstrapLookback)
	}
	return now.Add(-s.config.Since)
}

// processLinks fans the candidate links out over a bounded worker pool.
// Returns an error only when the context is cancelled.
func (s *Service) processLinks(
	ctx context.Context,
	logger *slog.Logger,
	links []string,
	threshold time.Time,
	stats *Stats,
) error {
	sem := make(chan struct{}, s.config.Concurrency)
	eg, egCtx := errgroup.WithContext(ctx)

	for _, link := range links {
		url := link
		eg.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-egCtx.Done():
				return egCtx.Err()
			}
			defer func() { <-sem }()

			result, err := s.processLink(egCtx, logger, url, threshold, stats)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				logger.Warn("article processing failed, skipping",
					slog.String("url", url),
					slog.Any("error", err))
				atomic.AddInt64(&stats.Failed, 1)
				return nil
			}

			s.recordOutcome(result, stats)
			return nil
		})
	}

	return eg.Wait()
}

// processLink handles one candidate URL: duplicate pre-check, fetch,
// extract, filter, persist.
func (s *Service) processLink(
	ctx context.Context,
	logger *slog.Logger,
	url string,
	threshold time.Time,
	stats *Stats,
) (outcome, error) {
	exists, err := s.Repo.ExistsByURL(ctx, url)
	if err != nil {
		return outcomeFailed, fmt.Errorf("check existing article: %w", err)
	}
	if exists {
		return outcomeDuplicate, nil
	}

	fetchStart := time.Now()
	html, err := s.Fetcher.Fetch(ctx, url)
	metrics.RecordPageFetch(err == nil, time.Since(fetchStart))
	if err != nil {
		return outcomeFailed, fmt.Errorf("fetch page: %w", err)
	}
	atomic.AddInt64(&stats.PagesFetched, 1)

	article := s.Extractor.Extract(url, html)

	if article.IsPaywalled {
		logger.Debug("article is paywalled, not persisting", slog.String("url", url))
		return outcomePaywalled, nil
	}

	// Articles without a published date are kept; only a known date older
	// than the threshold filters an article out.
	if article.PublishedAt != nil && article.PublishedAt.Before(threshold) {
		return outcomeStale, nil
	}

	if err := article.Validate(); err != nil {
		return outcomeFailed, fmt.Errorf("validate article: %w", err)
	}

	if err := s.Repo.Create(ctx, article); err != nil {
		if errors.Is(err, entity.ErrDuplicateURL) {
			return outcomeDuplicate, nil
		}
		return outcomeFailed, fmt.Errorf("save article: %w", err)
	}

	return outcomeSaved, nil
}

// recordOutcome folds one link outcome into the pass counters and metrics.
func (s *Service) recordOutcome(result outcome, stats *Stats) {
	switch result {
	case outcomeSaved:
		atomic.AddInt64(&stats.Saved, 1)
		metrics.RecordArticleSaved()
	case outcomePaywalled:
		atomic.AddInt64(&stats.SkippedPaywalled, 1)
		metrics.RecordArticleSkipped(metrics.SkipReasonPaywalled)
	case outcomeStale:
		atomic.AddInt64(&stats.SkippedStale, 1)
		metrics.RecordArticleSkipped(metrics.SkipReasonStale)
	case outcomeDuplicate:
		atomic.AddInt64(&stats.SkippedDuplicate, 1)
		metrics.RecordArticleSkipped(metrics.SkipReasonDuplicate)
	case outcomeFailed:
		atomic.AddInt64(&stats.Failed, 1)
	}
}

// updateArticleGauge refreshes the stored-article gauge, best effort.
func (s *Service) updateArticleGauge(ctx context.Context, logger *slog.Logger) {
	count, err := s.Repo.CountArticles(ctx)
	if err != nil {
		logger.Warn("article count refresh failed", slog.Any("error", err))
		return
	}
	metrics.UpdateArticlesTotal(int(count))
}
