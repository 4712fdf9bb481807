package circulation

import (
	"context"
	"time"
)

const (
	// OperationDurationMetric tracks Library.Execute duration (OpenTelemetry-compatible).
	OperationDurationMetric = "circulation_operation_duration_seconds"

	// OperationCallsMetric tracks total operations by type, status, and outcome.
	OperationCallsMetric = "circulation_operation_calls_total"

	// WaitListFullMetric tracks claims rejected by a full waitlist.
	WaitListFullMetric = "circulation_waitlist_full_total"

	// JournalFailuresMetric tracks journal writes that failed after an operation was applied.
	JournalFailuresMetric = "circulation_journal_failures_total"

	// FlipCountMetric tracks the reported flip count after each operation.
	FlipCountMetric = "circulation_flip_count"

	// CatalogSizeMetric tracks the number of catalogued records after each operation.
	CatalogSizeMetric = "circulation_catalog_records"

	// StatusSuccess indicates the operation was applied as requested.
	StatusSuccess = "success"

	// StatusRejected indicates a business failure reported in the Result.
	StatusRejected = "rejected"

	LogMsgOperationCompleted = "circulation operation completed"
	LogMsgOperationRejected  = "circulation operation rejected"
	LogMsgJournalFailed      = "circulation journal write failed"

	LogAttrOperationType = "operation_type"
	LogAttrStatus        = "status"
	LogAttrOutcome       = "business_outcome"
	LogAttrRecordID      = "record_id"
	LogAttrPatronID      = "patron_id"
	LogAttrDurationMS    = "duration_ms"
	LogAttrFlipCount     = "flip_count"
	LogAttrError         = "error"

	// SpanNameExecute is the tracing span name for Library.Execute.
	SpanNameExecute = "circulation.execute"
)

// Logger interface for operational logging (log/slog's *slog.Logger satisfies it).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with trace correlation.
// If both loggers are configured, the ContextualLogger wins.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for operation metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for distributed tracing of operations.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// BuildOperationLabels creates the standard metric labels for an operation.
func BuildOperationLabels(operationType, status string, outcome Outcome) map[string]string {
	return map[string]string{
		LogAttrOperationType: operationType,
		LogAttrStatus:        status,
		LogAttrOutcome:       string(outcome),
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

func statusOf(result Result) string {
	if result.Err() != nil {
		return StatusRejected
	}

	return StatusSuccess
}

func (l *Library) startSpan(ctx context.Context, op Operation) (context.Context, SpanContext) {
	if l.tracingCollector == nil {
		return ctx, nil
	}

	return l.tracingCollector.StartSpan(ctx, SpanNameExecute, map[string]string{
		LogAttrOperationType: op.OperationType(),
	})
}

func (l *Library) finishSpan(span SpanContext, result Result) {
	if l.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{LogAttrOutcome: string(result.Outcome())}
	if err := result.Err(); err != nil {
		attrs[LogAttrError] = err.Error()
	}

	l.tracingCollector.FinishSpan(span, statusOf(result), attrs)
}

func (l *Library) recordMetrics(result Result, duration time.Duration) {
	if l.metricsCollector == nil {
		return
	}

	labels := BuildOperationLabels(result.OperationType(), statusOf(result), result.Outcome())
	l.metricsCollector.RecordDuration(OperationDurationMetric, duration, labels)
	l.metricsCollector.IncrementCounter(OperationCallsMetric, labels)

	if result.Outcome() == OutcomeWaitListFull {
		l.metricsCollector.IncrementCounter(WaitListFullMetric, map[string]string{})
	}

	l.metricsCollector.RecordValue(FlipCountMetric, float64(l.flipCount()), map[string]string{})
	l.metricsCollector.RecordValue(CatalogSizeMetric, float64(l.catalog.Len()), map[string]string{})
}

func (l *Library) logResult(ctx context.Context, result Result, duration time.Duration) {
	args := []any{
		LogAttrOperationType, result.OperationType(),
		LogAttrOutcome, string(result.Outcome()),
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if err := result.Err(); err != nil {
		l.logWarn(ctx, LogMsgOperationRejected, append(args, LogAttrError, err.Error())...)
		return
	}

	l.logInfo(ctx, LogMsgOperationCompleted, append(args, LogAttrFlipCount, l.flipCount())...)
}

func (l *Library) logInfo(ctx context.Context, msg string, args ...any) {
	if l.contextualLogger != nil {
		l.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Library) logWarn(ctx context.Context, msg string, args ...any) {
	if l.contextualLogger != nil {
		l.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}

func (l *Library) logError(ctx context.Context, msg string, args ...any) {
	if l.contextualLogger != nil {
		l.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if l.logger != nil {
		l.logger.Error(msg, args...)
	}
}
