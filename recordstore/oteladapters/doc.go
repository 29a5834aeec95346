// Package oteladapters provides OpenTelemetry implementations of the recordstore observability interfaces.
//
// The lending desk and the PostgreSQL record store only depend on the small interfaces
// declared in package recordstore. The adapters here map them onto OpenTelemetry:
//
//   - SlogBridgeLogger and OTelLogger implement recordstore.ContextualLogger
//   - MetricsCollector implements recordstore.MetricsCollector and recordstore.ContextualMetricsCollector
//   - TracingCollector implements recordstore.TracingCollector
//
// Usage:
//
//	store, err := postgresengine.NewStoreFromPGXPool(pool,
//		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("intellib")),
//		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("intellib"))),
//		postgresengine.WithTracing(oteladapters.NewTracingCollector(otel.Tracer("intellib"))),
//	)
package oteladapters
