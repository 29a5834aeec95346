package postgresengine

import (
	"github.com/AntonStoeckl/intellib/recordstore"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithSchema sets the database schema the collection tables live in.
func WithSchema(schema string) Option {
	return func(s *Store) error {
		if schema == "" {
			return recordstore.ErrEmptySchemaName
		}

		s.schema = schema

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing
// Info level: document counts and durations per operation
// Warn level: non-critical issues like failing to close rows
// Error level: failures that make an operation fail.
func WithLogger(logger recordstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// When both loggers are configured, the contextual logger wins.
func WithContextualLogger(logger recordstore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives operation durations, document counts, and database errors.
func WithMetrics(collector recordstore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// Every operation gets its own span.
func WithTracing(collector recordstore.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
