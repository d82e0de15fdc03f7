// Package fetcher retrieves raw HTML pages over HTTP with timeout, retry,
// rate limiting, and circuit breaking.
package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"newscrawl/internal/resilience/circuitbreaker"
	"newscrawl/internal/resilience/retry"
)

// ErrBodyTooLarge indicates the response body exceeded the configured size limit.
var ErrBodyTooLarge = errors.New("response body too large")

// PageFetcher fetches a URL and returns the raw HTML body.
// Implementations retry transient failures internally; the returned error is
// the final attempt's failure.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher implements PageFetcher with a shared http.Client, a token-bucket
// rate limiter, bounded-attempt retry with exponential backoff, and a circuit
// breaker covering the upstream site.
//
// Thread safety: HTTPFetcher is safe for concurrent use; the rate limiter and
// circuit breaker are shared across all workers so the whole run respects one
// request budget.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	config  Config
}

// New creates an HTTPFetcher with the given configuration.
func New(config Config) *HTTPFetcher {
	burst := int(config.RateLimit)
	if burst < 1 {
		burst = 1
	}

	return &HTTPFetcher{
		client: &http.Client{
			// The per-attempt timeout is applied via request context in doFetch;
			// this is a hard upper bound in case the context path is bypassed.
			Timeout: config.Timeout + 5*time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), burst),
		breaker: circuitbreaker.New(circuitbreaker.PageFetchConfig()),
		config:  config,
	}
}

// Fetch retrieves the page at url and returns its HTML.
//
// Each attempt waits for a rate limiter token, runs through the circuit
// breaker, and applies the per-attempt timeout. Transient failures (network
// errors, 5xx, 408, 429) are retried with exponential backoff up to the
// configured attempt cap; the final failure is returned, never swallowed.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var html string

	retryErr := retry.WithBackoff(ctx, f.config.Retry, func() error {
		if err := f.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		result, err := f.breaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, url)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				return fmt.Errorf("upstream circuit open: %w", err)
			}
			return err
		}

		html = result.(string)
		return nil
	})
	if retryErr != nil {
		return "", retryErr
	}

	return html, nil
}

// doFetch performs one HTTP attempt without retry or circuit breaking.
func (f *HTTPFetcher) doFetch(ctx context.Context, url string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any non-2xx status is a fetch failure; retryability is decided by the
	// retry package from the status code.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response exceeds %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	return string(body), nil
}
