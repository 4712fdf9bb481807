package spies

import (
	"context"
	"sync"
)

// ContextualLogRecord is one captured ContextualLoggerSpy call.
type ContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy captures context-aware logging calls.
type ContextualLoggerSpy struct {
	records []ContextualLogRecord
	mu      sync.Mutex
}

func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.capture(ctx, "debug", msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.capture(ctx, "info", msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.capture(ctx, "warn", msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.capture(ctx, "error", msg, args)
}

func (s *ContextualLoggerSpy) capture(ctx context.Context, level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, ContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// Records returns a copy of all captured calls in call order.
func (s *ContextualLoggerSpy) Records() []ContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]ContextualLogRecord, len(s.records))
	copy(records, s.records)

	return records
}

// RecordsAt returns the captured calls of one level ("debug", "info", "warn", "error").
func (s *ContextualLoggerSpy) RecordsAt(level string) []ContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []ContextualLogRecord
	for _, r := range s.records {
		if r.Level == level {
			records = append(records, r)
		}
	}

	return records
}
