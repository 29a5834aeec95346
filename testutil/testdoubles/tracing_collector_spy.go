package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/intellib/recordstore"
)

// SpySpanRecord captures one span from start to finish.
type SpySpanRecord struct {
	Name        string
	StartAttrs  map[string]string
	Status      string
	FinishAttrs map[string]string
	Finished    bool
}

// TracingCollectorSpy captures started and finished spans for testing.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpySpanRecord
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

type spySpanContext struct {
	spy    *TracingCollectorSpy
	record *SpySpanRecord
}

func (c *spySpanContext) SetStatus(status string) {
	c.spy.mu.Lock()
	defer c.spy.mu.Unlock()

	c.record.Status = status
}

func (c *spySpanContext) AddAttribute(key, value string) {
	c.spy.mu.Lock()
	defer c.spy.mu.Unlock()

	if c.record.FinishAttrs == nil {
		c.record.FinishAttrs = make(map[string]string)
	}

	c.record.FinishAttrs[key] = value
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, recordstore.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &SpySpanRecord{Name: name, StartAttrs: maps.Clone(attrs)}
	s.spans = append(s.spans, record)

	return ctx, &spySpanContext{spy: s, record: record}
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx recordstore.SpanContext, status string, attrs map[string]string) {
	spySpan, ok := spanCtx.(*spySpanContext)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if spySpan.record.FinishAttrs == nil {
		spySpan.record.FinishAttrs = make(map[string]string)
	}

	for key, value := range attrs {
		spySpan.record.FinishAttrs[key] = value
	}

	spySpan.record.Status = status
	spySpan.record.Finished = true
}

// Spans returns copies of all captured spans in start order.
func (s *TracingCollectorSpy) Spans() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]SpySpanRecord, 0, len(s.spans))
	for _, span := range s.spans {
		spans = append(spans, SpySpanRecord{
			Name:        span.Name,
			StartAttrs:  maps.Clone(span.StartAttrs),
			Status:      span.Status,
			FinishAttrs: maps.Clone(span.FinishAttrs),
			Finished:    span.Finished,
		})
	}

	return spans
}
