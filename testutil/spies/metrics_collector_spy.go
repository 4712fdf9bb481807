package spies

import (
	"maps"
	"sync"
	"time"
)

// MetricKind tells which MetricsCollector method produced a MetricRecord.
type MetricKind string

const (
	MetricKindDuration MetricKind = "duration"
	MetricKindCounter  MetricKind = "counter"
	MetricKindValue    MetricKind = "value"
)

// MetricRecord is one captured MetricsCollector call.
type MetricRecord struct {
	Kind     MetricKind
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// MetricsCollectorSpy captures MetricsCollector calls.
type MetricsCollectorSpy struct {
	records []MetricRecord
	mu      sync.Mutex
}

func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.capture(MetricRecord{Kind: MetricKindDuration, Metric: metric, Duration: duration, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.capture(MetricRecord{Kind: MetricKindCounter, Metric: metric, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.capture(MetricRecord{Kind: MetricKindValue, Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) capture(record MetricRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
}

// RecordsFor returns the captured calls for one metric name in call order.
func (s *MetricsCollectorSpy) RecordsFor(metric string) []MetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []MetricRecord
	for _, r := range s.records {
		if r.Metric == metric {
			records = append(records, r)
		}
	}

	return records
}

// CountFor returns how often a metric was recorded with labels containing all of want.
func (s *MetricsCollectorSpy) CountFor(metric string, want map[string]string) int {
	count := 0

	for _, r := range s.RecordsFor(metric) {
		if containsLabels(r.Labels, want) {
			count++
		}
	}

	return count
}

// LastValue returns the value of the last RecordValue call for a metric.
func (s *MetricsCollectorSpy) LastValue(metric string) (float64, bool) {
	records := s.RecordsFor(metric)

	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Kind == MetricKindValue {
			return records[i].Value, true
		}
	}

	return 0, false
}

func containsLabels(labels, want map[string]string) bool {
	for k, v := range want {
		if labels[k] != v {
			return false
		}
	}

	return true
}
