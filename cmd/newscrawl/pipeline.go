package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"newscrawl/internal/config"
	pgRepo "newscrawl/internal/infra/adapter/persistence/postgres"
	"newscrawl/internal/infra/db"
	"newscrawl/internal/infra/discover"
	"newscrawl/internal/infra/extract"
	"newscrawl/internal/infra/fetcher"
	"newscrawl/internal/resilience/retry"
	"newscrawl/internal/usecase/crawl"
)

// pipeline bundles the wired crawl service with its resources.
type pipeline struct {
	service *crawl.Service
	config  config.CrawlerConfig
	db      *sql.DB
}

func (p *pipeline) Close() {
	if err := p.db.Close(); err != nil {
		slog.Default().Error("failed to close database", slog.Any("error", err))
	}
}

// newPipeline loads the crawler configuration, opens the store, and wires
// the fetch, discovery, and extraction stages into a crawl service.
// A positive sinceHours overrides the configured recency window.
func newPipeline(logger *slog.Logger, sinceHours int) (*pipeline, error) {
	cfg, err := config.LoadCrawlerConfig()
	if err != nil {
		return nil, fmt.Errorf("load crawler config: %w", err)
	}
	if sinceHours > 0 {
		cfg.SinceHours = sinceHours
	}

	database, err := db.Open()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	retryCfg := retry.PageFetchConfig()
	retryCfg.MaxAttempts = cfg.RetryMaxAttempts

	pageFetcher := fetcher.New(fetcher.Config{
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.RequestTimeout,
		MaxBodySize: cfg.MaxBodySize,
		RateLimit:   cfg.RateLimit,
		Retry:       retryCfg,
	})

	discoverer := discover.New(pageFetcher, discover.Config{
		ArticlePathSegment: cfg.ArticlePathSegment,
		MaxPages:           cfg.MaxPages,
	}, logger)

	extractor := extract.New(nil, extract.Config{
		ArticlePathSegment: cfg.ArticlePathSegment,
	}, logger)

	service := crawl.NewService(
		discoverer,
		pageFetcher,
		extractor,
		pgRepo.NewArticleRepo(database),
		crawl.Config{
			StartURL:          cfg.StartURL,
			Concurrency:       cfg.Concurrency,
			Since:             time.Duration(cfg.SinceHours) * time.Hour,
			BootstrapLookback: cfg.BootstrapLookback(),
		},
		logger,
	)

	return &pipeline{service: service, config: cfg, db: database}, nil
}
