package spies

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// SpanContextSpy is the span handed out by TracingCollectorSpy.
type SpanContextSpy struct {
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

func (c *SpanContextSpy) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

func (c *SpanContextSpy) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}

	c.attributes[key] = value
}

// SpanRecord is one captured span from start to finish.
type SpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
	span            *SpanContextSpy
}

// TracingCollectorSpy captures started and finished spans.
type TracingCollectorSpy struct {
	spans []SpanRecord
	mu    sync.Mutex
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, circulation.SpanContext) {

	s.mu.Lock()
	defer s.mu.Unlock()

	span := &SpanContextSpy{}
	s.spans = append(s.spans, SpanRecord{Name: name, StartAttributes: maps.Clone(attrs), span: span})

	return ctx, span
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx circulation.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpanContextSpy)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spans {
		if s.spans[i].span == span {
			s.spans[i].Status = status
			s.spans[i].EndAttributes = maps.Clone(attrs)
			s.spans[i].Finished = true

			return
		}
	}
}

// Spans returns a copy of all captured spans in start order.
func (s *TracingCollectorSpy) Spans() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]SpanRecord, len(s.spans))
	copy(spans, s.spans)

	return spans
}
