package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/intellib/recordstore/oteladapters"
)

func newCollectorWithRecorder() (*oteladapters.TracingCollector, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), recorder
}

func attributeValue(attrs []attribute.KeyValue, key string) (string, bool) {
	for _, attr := range attrs {
		if string(attr.Key) == key {
			return attr.Value.AsString(), true
		}
	}

	return "", false
}

func Test_TracingCollector_FinishSpan_Success(t *testing.T) {
	// arrange
	collector, recorder := newCollectorWithRecorder()

	// act
	_, span := collector.StartSpan(context.Background(), "recordstore.find", map[string]string{"collection": "book_issue"})
	collector.FinishSpan(span, "success", map[string]string{"document_count": "2"})

	// assert
	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "recordstore.find", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)

	collection, ok := attributeValue(ended[0].Attributes(), "collection")
	assert.True(t, ok)
	assert.Equal(t, "book_issue", collection)

	count, ok := attributeValue(ended[0].Attributes(), "document_count")
	assert.True(t, ok)
	assert.Equal(t, "2", count)
}

func Test_TracingCollector_FinishSpan_ErrorStatuses(t *testing.T) {
	for _, status := range []string{"error", "backend_unavailable", "timeout"} {
		t.Run(status, func(t *testing.T) {
			// arrange
			collector, recorder := newCollectorWithRecorder()

			// act
			_, span := collector.StartSpan(context.Background(), "intellib.command.return_book", nil)
			collector.FinishSpan(span, status, nil)

			// assert
			ended := recorder.Ended()
			require.Len(t, ended, 1)
			assert.Equal(t, codes.Error, ended[0].Status().Code)
		})
	}
}

func Test_TracingCollector_BusinessOutcomes_KeepUnsetCode(t *testing.T) {
	// arrange
	collector, recorder := newCollectorWithRecorder()

	// act
	_, span := collector.StartSpan(context.Background(), "recordstore.find_one", nil)
	collector.FinishSpan(span, "not_found", nil)

	// assert
	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Unset, ended[0].Status().Code)

	status, ok := attributeValue(ended[0].Attributes(), "status")
	assert.True(t, ok)
	assert.Equal(t, "not_found", status)
}

func Test_TracingCollector_StartSpan_NestsUnderParent(t *testing.T) {
	// arrange
	collector, recorder := newCollectorWithRecorder()

	// act
	ctx, parent := collector.StartSpan(context.Background(), "intellib.query.total_fine", nil)
	_, child := collector.StartSpan(ctx, "recordstore.sum", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
	assert.Equal(t, ended[1].SpanContext().TraceID(), ended[0].SpanContext().TraceID())
}
