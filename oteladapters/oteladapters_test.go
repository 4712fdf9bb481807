package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/oteladapters"
)

func Test_SlogBridgeLoggerWithHandler_WritesAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message", "record_id", 1)
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	// assert
	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, `"record_id":1`)
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func Test_SlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("circulation-test")

	assert.NotPanics(t, func() { logger.InfoContext(context.Background(), "message", "key", "value") })
}

func Test_SlogBridgeLoggerWithProvider_CorrelatesRecordsWithActiveSpan(t *testing.T) {
	// arrange
	exporter := &logExporterSpy{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	logger := oteladapters.NewSlogBridgeLoggerWithProvider("circulation-test", provider)

	ctx, span := sdktrace.NewTracerProvider().Tracer("test").Start(context.Background(), "operation")
	defer span.End()

	// act
	logger.WarnContext(ctx, "circulation operation rejected", circulation.LogAttrRecordID, 7)

	// assert
	records := exporter.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "circulation operation rejected", records[0].Body().AsString())
	assert.Equal(t, log.SeverityWarn, records[0].Severity())
	assert.Equal(t, span.SpanContext().TraceID(), records[0].TraceID())
	assert.Equal(t, span.SpanContext().SpanID(), records[0].SpanID())
}

type logExporterSpy struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *logExporterSpy) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, record := range records {
		e.records = append(e.records, record.Clone())
	}

	return nil
}

func (e *logExporterSpy) Shutdown(context.Context) error {
	return nil
}

func (e *logExporterSpy) ForceFlush(context.Context) error {
	return nil
}

func (e *logExporterSpy) Records() []sdklog.Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]sdklog.Record(nil), e.records...)
}

func Test_MetricsCollector_RecordsInstruments(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	labels := map[string]string{circulation.LogAttrOperationType: circulation.LendOperationType}

	// act
	collector.RecordDuration(circulation.OperationDurationMetric, 150*time.Millisecond, labels)
	collector.IncrementCounter(circulation.OperationCallsMetric, labels)
	collector.IncrementCounter(circulation.OperationCallsMetric, labels)
	collector.RecordValue(circulation.FlipCountMetric, 12, nil)

	// assert
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	histogram, ok := findMetric(rm, circulation.OperationDurationMetric).Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)
	expectedAttrs := attribute.NewSet(attribute.String(circulation.LogAttrOperationType, circulation.LendOperationType))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))

	counter, ok := findMetric(rm, circulation.OperationCallsMetric).Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(2), counter.DataPoints[0].Value)

	gauge, ok := findMetric(rm, circulation.FlipCountMetric).Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, float64(12), gauge.DataPoints[0].Value)
}

func findMetric(rm metricdata.ResourceMetrics, name string) metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	return metricdata.Metrics{}
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: circulation.StatusSuccess, expectedCode: codes.Ok},
		{status: circulation.StatusRejected, expectedCode: codes.Unset},
		{status: "boom", expectedCode: codes.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter := tracetest.NewInMemoryExporter()
			collector := oteladapters.NewTracingCollector(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)).Tracer("test"))

			// act
			_, span := collector.StartSpan(context.Background(), circulation.SpanNameExecute, map[string]string{
				circulation.LogAttrOperationType: circulation.ReturnOperationType,
			})
			span.AddAttribute(circulation.LogAttrRecordID, "10")
			collector.FinishSpan(span, tc.status, map[string]string{circulation.LogAttrOutcome: "returned"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, circulation.SpanNameExecute, spans[0].Name)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Contains(t, spans[0].Attributes, attribute.String(circulation.LogAttrOperationType, circulation.ReturnOperationType))
			assert.Contains(t, spans[0].Attributes, attribute.String(circulation.LogAttrRecordID, "10"))
			assert.Contains(t, spans[0].Attributes, attribute.String(circulation.LogAttrOutcome, "returned"))
		})
	}
}

func Test_Library_WithOTelAdapters_ProducesSpanPerOperation(t *testing.T) {
	// arrange
	exporter := tracetest.NewInMemoryExporter()
	reader := sdkmetric.NewManualReader()
	lib, err := circulation.NewLibrary(
		circulation.WithTracing(oteladapters.NewTracingCollector(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)).Tracer("test"))),
		circulation.WithMetrics(oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))),
	)
	require.NoError(t, err)

	// act
	lib.Execute(context.Background(), circulation.AddRecord{RecordID: 1, Availability: circulation.AvailabilityYes})
	lib.Execute(context.Background(), circulation.Inspect{RecordID: 2})

	// assert
	assert.Len(t, exporter.GetSpans(), 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	size, ok := findMetric(rm, circulation.CatalogSizeMetric).Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	assert.Equal(t, float64(1), size.DataPoints[0].Value)
}
