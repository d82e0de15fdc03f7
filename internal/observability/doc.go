// Package observability centralizes the crawler's logging, metrics, and
// tracing concerns.
//
// Subpackages:
//   - logging: slog construction, run and request ID correlation
//   - metrics: Prometheus collectors for crawl runs and the read API
//   - tracing: OpenTelemetry server spans for the read API
package observability
