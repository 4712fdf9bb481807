package circulation

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/waitlist"
)

// Journal receives the domain events produced by each operation.
// shell.JournalRecorder is the production implementation.
type Journal interface {
	Record(ctx context.Context, events ...core.DomainEvent) error
}

// Option defines a functional option for configuring a Library.
type Option func(*Library) error

// WithLogger sets the logger for the Library.
func WithLogger(logger Logger) Option {
	return func(l *Library) error {
		l.logger = logger
		return nil
	}
}

// WithContextualLogger sets the context-aware logger for the Library.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(l *Library) error {
		l.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Library.
func WithMetrics(collector MetricsCollector) Option {
	return func(l *Library) error {
		l.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Library.
func WithTracing(collector TracingCollector) Option {
	return func(l *Library) error {
		l.tracingCollector = collector
		return nil
	}
}

// WithJournal sets the Journal that receives the domain events of every operation.
// Journal failures are logged and counted; they never undo an applied operation.
func WithJournal(journal Journal) Option {
	return func(l *Library) error {
		l.journal = journal
		return nil
	}
}

// WithArrivalClock replaces the default SequenceClock that orders equal-priority claims.
func WithArrivalClock(clock waitlist.ArrivalClock) Option {
	return func(l *Library) error {
		if clock == nil {
			return ErrNilArrivalClock
		}

		l.clock = clock
		return nil
	}
}

// WithNow replaces time.Now for event timestamps.
func WithNow(now func() time.Time) Option {
	return func(l *Library) error {
		if now == nil {
			return ErrNilNowFunc
		}

		l.now = now
		return nil
	}
}
