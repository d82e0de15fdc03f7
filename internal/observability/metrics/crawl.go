package metrics

import "time"

// Skip reasons used with RecordArticleSkipped.
const (
	SkipReasonPaywalled = "paywalled"
	SkipReasonStale     = "stale"
	SkipReasonDuplicate = "duplicate"
)

// RecordCrawlRun records a finished crawl pass and its wall time.
func RecordCrawlRun(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	CrawlRunsTotal.WithLabelValues(status).Inc()
	CrawlDuration.Observe(duration.Seconds())
}

// RecordLinksDiscovered records the number of candidate links a crawl pass found.
func RecordLinksDiscovered(count int) {
	LinksDiscoveredTotal.Add(float64(count))
}

// RecordPageFetch records the outcome and duration of one article page fetch.
func RecordPageFetch(success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	PagesFetchedTotal.WithLabelValues(result).Inc()
	PageFetchDuration.Observe(duration.Seconds())
}

// RecordArticleSaved records one article persisted to the store.
func RecordArticleSaved() {
	ArticlesSavedTotal.Inc()
}

// RecordArticleSkipped records an article skipped before persistence.
// Reason should be one of the SkipReason constants.
func RecordArticleSkipped(reason string) {
	ArticlesSkippedTotal.WithLabelValues(reason).Inc()
}

// UpdateArticlesTotal updates the stored-article gauge.
// Updated after each crawl pass to reflect the current state.
func UpdateArticlesTotal(count int) {
	ArticlesTotal.Set(float64(count))
}

// RecordHTTPRequest records a read API request with its metadata.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
