// Package config loads the crawler's process configuration.
// Values come from an optional YAML file (NEWSCRAWL_CONFIG) overridden by
// environment variables, in that order.
package config

import (
	"fmt"
	"strings"
	"time"

	"newscrawl/pkg/config"
)

// bootstrapLookback is the fixed recency window for bootstrap runs.
const bootstrapLookback = 30 * 24 * time.Hour

// CrawlerConfig holds every knob the crawl pipeline consumes.
//
// YAML keys mirror the environment variable names in lower snake case;
// environment variables always win over file values.
type CrawlerConfig struct {
	// StartURL is the index page where link discovery begins.
	StartURL string `yaml:"start_url"`

	// UserAgent is sent on every outbound request.
	UserAgent string `yaml:"user_agent"`

	// Concurrency is the worker pool width for per-URL pipelines.
	// Range: 1-50. Default: 5
	Concurrency int `yaml:"concurrency"`

	// RequestTimeout bounds a single HTTP request, including retries' individual attempts.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// RetryMaxAttempts is the total attempt count per fetch (first try included).
	RetryMaxAttempts int `yaml:"retry_max_attempts"`

	// SinceHours is the incremental run lookback window in hours.
	SinceHours int `yaml:"since_hours"`

	// MaxPages bounds pagination: the start page plus at most MaxPages-1 older pages.
	MaxPages int `yaml:"max_pages"`

	// ArticlePathSegment classifies a URL as an article when its path contains
	// this literal segment. Default: /content/
	ArticlePathSegment string `yaml:"article_path_segment"`

	// Interval is the pause between scheduled runs, measured from run completion.
	Interval time.Duration `yaml:"interval"`

	// CronSchedule, when set, replaces the fixed interval loop with a cron
	// schedule (non-overlapping; a tick firing mid-run is skipped).
	CronSchedule string `yaml:"cron_schedule"`

	// RateLimit is the outbound request budget in requests per second.
	RateLimit float64 `yaml:"rate_limit"`

	// MaxBodySize caps a single HTTP response body in bytes.
	MaxBodySize int64 `yaml:"max_body_size"`

	// MetricsPort serves Prometheus metrics during schedule runs. 0 disables.
	MetricsPort int `yaml:"metrics_port"`
}

// DefaultCrawlerConfig returns the built-in defaults.
func DefaultCrawlerConfig() CrawlerConfig {
	return CrawlerConfig{
		StartURL:           "https://www.ft.com/world",
		UserAgent:          "newscrawl/1.0",
		Concurrency:        5,
		RequestTimeout:     20 * time.Second,
		RetryMaxAttempts:   3,
		SinceHours:         1,
		MaxPages:           10,
		ArticlePathSegment: "/content/",
		Interval:           1 * time.Hour,
		RateLimit:          4,
		MaxBodySize:        10 * 1024 * 1024,
		MetricsPort:        9091,
	}
}

// BootstrapLookback returns the recency window used for bootstrap runs.
func (c *CrawlerConfig) BootstrapLookback() time.Duration {
	return bootstrapLookback
}

// Validate checks the configuration for values that would break the pipeline.
func (c *CrawlerConfig) Validate() error {
	if c.StartURL == "" {
		return fmt.Errorf("start URL must not be empty")
	}
	if !strings.HasPrefix(c.StartURL, "http://") && !strings.HasPrefix(c.StartURL, "https://") {
		return fmt.Errorf("start URL must be an absolute http(s) URL, got %q", c.StartURL)
	}
	if c.Concurrency < 1 || c.Concurrency > 50 {
		return fmt.Errorf("concurrency must be between 1 and 50, got %d", c.Concurrency)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", c.RequestTimeout)
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.RetryMaxAttempts)
	}
	if c.SinceHours < 1 {
		return fmt.Errorf("since hours must be at least 1, got %d", c.SinceHours)
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("max pages must be at least 1, got %d", c.MaxPages)
	}
	if c.ArticlePathSegment == "" {
		return fmt.Errorf("article path segment must not be empty")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RateLimit)
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	return nil
}

// LoadCrawlerConfig builds the configuration from defaults, the optional YAML
// file named by NEWSCRAWL_CONFIG, and environment variable overrides.
func LoadCrawlerConfig() (CrawlerConfig, error) {
	cfg := DefaultCrawlerConfig()

	path := config.GetEnvString("NEWSCRAWL_CONFIG", "")
	if _, err := config.LoadYAMLFile(path, &cfg); err != nil {
		return cfg, err
	}

	cfg.StartURL = config.GetEnvString("START_URL", cfg.StartURL)
	cfg.UserAgent = config.GetEnvString("USER_AGENT", cfg.UserAgent)
	cfg.Concurrency = config.GetEnvInt("CONCURRENCY", cfg.Concurrency)
	cfg.RequestTimeout = config.GetEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.RetryMaxAttempts = config.GetEnvInt("RETRY_MAX_ATTEMPTS", cfg.RetryMaxAttempts)
	cfg.SinceHours = config.GetEnvInt("SINCE_HOURS", cfg.SinceHours)
	cfg.MaxPages = config.GetEnvInt("MAX_PAGES", cfg.MaxPages)
	cfg.ArticlePathSegment = config.GetEnvString("ARTICLE_PATH_SEGMENT", cfg.ArticlePathSegment)
	cfg.Interval = config.GetEnvDuration("CRAWL_INTERVAL", cfg.Interval)
	cfg.CronSchedule = config.GetEnvString("CRAWL_CRON_SCHEDULE", cfg.CronSchedule)
	cfg.RateLimit = config.GetEnvFloat("FETCH_RATE_LIMIT", cfg.RateLimit)
	cfg.MaxBodySize = int64(config.GetEnvInt("FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MetricsPort = config.GetEnvInt("METRICS_PORT", cfg.MetricsPort)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
