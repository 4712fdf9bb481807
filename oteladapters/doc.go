// Package oteladapters implements the circulation observability interfaces on top of OpenTelemetry.
//
//   - SlogBridgeLogger implements circulation.ContextualLogger
//   - MetricsCollector implements circulation.MetricsCollector
//   - TracingCollector implements circulation.TracingCollector
//
// The adapters take their meter, tracer, or logger from the caller, so they work with both the
// global OpenTelemetry providers and explicitly configured SDK providers.
package oteladapters
