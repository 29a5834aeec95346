package testdoubles

import (
	"context"
	"log/slog"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
type LogHandlerSpy struct {
	mu      sync.Mutex
	records []slog.Record
}

func NewLogHandlerSpy() *LogHandlerSpy {
	return &LogHandlerSpy{}
}

func (s *LogHandlerSpy) Handle(_ context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record.Clone())

	return nil
}

func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return s
}

func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// Records returns a copy of all captured log records.
func (s *LogHandlerSpy) Records() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]slog.Record, len(s.records))
	copy(records, s.records)

	return records
}

// HasMessage reports whether a record with the given level and message was captured.
func (s *LogHandlerSpy) HasMessage(level slog.Level, msg string) bool {
	for _, record := range s.Records() {
		if record.Level == level && record.Message == msg {
			return true
		}
	}

	return false
}

// HasMessageWithAttr reports whether a record with the given message carries the attribute.
func (s *LogHandlerSpy) HasMessageWithAttr(msg string, key string, value string) bool {
	for _, record := range s.Records() {
		if record.Message != msg {
			continue
		}

		found := false
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == key && attr.Value.String() == value {
				found = true
				return false
			}

			return true
		})

		if found {
			return true
		}
	}

	return false
}
