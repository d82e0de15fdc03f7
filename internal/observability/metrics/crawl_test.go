package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, g.Write(m))
	return m.GetGauge().GetValue()
}

func TestRecordCrawlRun(t *testing.T) {
	success := CrawlRunsTotal.WithLabelValues("success")
	failure := CrawlRunsTotal.WithLabelValues("failure")
	beforeSuccess := counterValue(t, success)
	beforeFailure := counterValue(t, failure)

	RecordCrawlRun(true, 2*time.Second)
	RecordCrawlRun(false, time.Second)

	assert.Equal(t, beforeSuccess+1, counterValue(t, success))
	assert.Equal(t, beforeFailure+1, counterValue(t, failure))
}

func TestRecordArticleSkipped(t *testing.T) {
	paywalled := ArticlesSkippedTotal.WithLabelValues(SkipReasonPaywalled)
	before := counterValue(t, paywalled)

	RecordArticleSkipped(SkipReasonPaywalled)
	RecordArticleSkipped(SkipReasonPaywalled)

	assert.Equal(t, before+2, counterValue(t, paywalled))
}

func TestRecordLinksDiscovered(t *testing.T) {
	before := counterValue(t, LinksDiscoveredTotal)

	RecordLinksDiscovered(7)

	assert.Equal(t, before+7, counterValue(t, LinksDiscoveredTotal))
}

func TestRecordPageFetch(t *testing.T) {
	failure := PagesFetchedTotal.WithLabelValues("failure")
	before := counterValue(t, failure)

	RecordPageFetch(false, 100*time.Millisecond)

	assert.Equal(t, before+1, counterValue(t, failure))
}

func TestUpdateArticlesTotal(t *testing.T) {
	UpdateArticlesTotal(42)
	assert.Equal(t, float64(42), gaugeValue(t, ArticlesTotal))
}

func TestUpdateDBConnectionStats(t *testing.T) {
	UpdateDBConnectionStats(3, 5)
	assert.Equal(t, float64(3), gaugeValue(t, DBConnectionsActive))
	assert.Equal(t, float64(5), gaugeValue(t, DBConnectionsIdle))
}

func TestRecordHTTPRequest(t *testing.T) {
	c := HTTPRequestsTotal.WithLabelValues("GET", "/articles", "200")
	before := counterValue(t, c)

	RecordHTTPRequest("GET", "/articles", "200", 15*time.Millisecond)

	assert.Equal(t, before+1, counterValue(t, c))
}
