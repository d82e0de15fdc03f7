// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track read API request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Crawl metrics track the crawl pipeline
var (
	// CrawlRunsTotal counts completed crawl passes by status
	CrawlRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawl_runs_total",
			Help: "Total number of crawl passes",
		},
		[]string{"status"}, // status: success, failure
	)

	// CrawlDuration measures the wall time of a full crawl pass
	CrawlDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crawl_duration_seconds",
			Help:    "Time taken by a full crawl pass",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// LinksDiscoveredTotal counts candidate article links found on index pages
	LinksDiscoveredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "links_discovered_total",
			Help: "Total number of candidate article links discovered",
		},
	)

	// PagesFetchedTotal counts article page fetches by result
	PagesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pages_fetched_total",
			Help: "Total number of article page fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// PageFetchDuration measures time to fetch a single article page
	PageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Time taken to fetch one article page",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8, 25.6},
		},
	)

	// ArticlesSavedTotal counts articles persisted to the store
	ArticlesSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_saved_total",
			Help: "Total number of articles saved",
		},
	)

	// ArticlesSkippedTotal counts articles skipped before persistence by reason
	ArticlesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_skipped_total",
			Help: "Total number of articles skipped",
		},
		[]string{"reason"}, // reason: paywalled, stale, duplicate
	)

	// ArticlesTotal tracks the total number of articles in the database
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the database",
		},
	)
)

// Database metrics track connection pool health
var (
	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
