package fetcher

import (
	"fmt"
	"time"

	"newscrawl/internal/resilience/retry"
)

// Config holds the configuration for page fetching.
type Config struct {
	// UserAgent is sent on every request.
	UserAgent string

	// Timeout bounds a single HTTP attempt. Retries each get a fresh timeout.
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes. Larger responses
	// are rejected rather than truncated.
	MaxBodySize int64

	// RateLimit is the outbound request budget in requests per second, shared
	// across all workers of a run.
	RateLimit float64

	// Retry controls attempt count and backoff. Retry.MaxAttempts is the total
	// number of attempts including the first.
	Retry retry.Config
}

// DefaultConfig returns production defaults for page fetching.
func DefaultConfig() Config {
	return Config{
		UserAgent:   "newscrawl/1.0",
		Timeout:     20 * time.Second,
		MaxBodySize: 10 * 1024 * 1024,
		RateLimit:   4,
		Retry:       retry.PageFetchConfig(),
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RateLimit)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
