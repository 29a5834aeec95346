package oteladapters_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/intellib/recordstore/oteladapters"
)

func newCollectorWithReader() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics), "failed to collect metrics")

	return resourceMetrics
}

func findMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}

func Test_MetricsCollector_RecordDuration_AsHistogramInSeconds(t *testing.T) {
	// arrange
	collector, reader := newCollectorWithReader()
	labels := map[string]string{"operation": "find", "status": "success"}

	// act
	collector.RecordDuration("recordstore_operation_duration_seconds", 150*time.Millisecond, labels)

	// assert
	m := findMetric(t, collect(t, reader), "recordstore_operation_duration_seconds")
	histogram, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected a float64 histogram")
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)
	assert.Equal(t, "s", m.Unit)

	expectedAttrs := attribute.NewSet(attribute.String("operation", "find"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounterContext_AddsUp(t *testing.T) {
	// arrange
	collector, reader := newCollectorWithReader()
	labels := map[string]string{"operation": "issue_book"}

	// act
	collector.IncrementCounterContext(context.Background(), "intellib_commands_total", labels)
	collector.IncrementCounter("intellib_commands_total", labels)
	collector.IncrementCounterContext(context.Background(), "intellib_commands_total", labels)

	// assert
	m := findMetric(t, collect(t, reader), "intellib_commands_total")
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum")
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
	assert.True(t, sum.IsMonotonic)
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	// arrange
	collector, reader := newCollectorWithReader()

	// act
	collector.RecordValue("recordstore_documents_affected", 3, nil)
	collector.RecordValueContext(context.Background(), "recordstore_documents_affected", 1, nil)

	// assert
	m := findMetric(t, collect(t, reader), "recordstore_documents_affected")
	gauge, ok := m.Data.(metricdata.Gauge[float64])
	require.True(t, ok, "expected a float64 gauge")
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 1.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_IsSafeForConcurrentUse(t *testing.T) {
	// arrange
	collector, reader := newCollectorWithReader()
	wg := sync.WaitGroup{}

	// act
	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			collector.IncrementCounter("intellib_concurrent_total", map[string]string{"worker": "any"})
		}()
	}

	wg.Wait()

	// assert
	m := findMetric(t, collect(t, reader), "intellib_concurrent_total")
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(20), sum.DataPoints[0].Value)
}
