package testdoubles

import (
	"context"
	"sync"
)

// SpyLogRecord is one captured ContextualLogger call.
type SpyLogRecord struct {
	Level string
	Msg   string
	Args  []any
	Ctx   context.Context
}

// ContextualLoggerSpy captures context-aware log calls for testing.
type ContextualLoggerSpy struct {
	mu      sync.Mutex
	records []SpyLogRecord
}

func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level string, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{Level: level, Msg: msg, Args: append([]any(nil), args...), Ctx: ctx})
}

// Records returns a copy of all captured calls.
func (s *ContextualLoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyLogRecord, len(s.records))
	copy(records, s.records)

	return records
}

// HasMessage reports whether a call with the given level and message was captured.
func (s *ContextualLoggerSpy) HasMessage(level string, msg string) bool {
	for _, record := range s.Records() {
		if record.Level == level && record.Msg == msg {
			return true
		}
	}

	return false
}
