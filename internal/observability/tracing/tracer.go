// Package tracing wraps the read API in OpenTelemetry server spans.
// Without a configured exporter the spans are no-ops, so the middleware is
// safe to leave in the chain in every environment.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("newscrawl")

// GetTracer returns the tracer used for request spans.
func GetTracer() trace.Tracer {
	return tracer
}
