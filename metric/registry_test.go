package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistry_CoreMetricsRegistered(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NotNil(t, registry.CoreMetrics())
	require.NotNil(t, registry.PrometheusRegistry())

	// Core metrics are usable immediately.
	registry.Metrics.DocumentsExported.Add(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(registry.Metrics.DocumentsExported))

	registry.Metrics.RowsWritten.WithLabelValues("train").Add(8)
	assert.Equal(t, float64(8),
		testutil.ToFloat64(registry.Metrics.RowsWritten.WithLabelValues("train")))
}

func TestRegister_DuplicateRejected(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "featureflow_test_counter",
		Help: "test counter",
	})

	require.NoError(t, registry.Register("reader", "test_counter", counter))
	assert.Error(t, registry.Register("reader", "test_counter", counter))
}

func TestUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "featureflow_test_unregister",
		Help: "test counter",
	})

	require.NoError(t, registry.Register("reader", "gone", counter))
	assert.True(t, registry.Unregister("reader", "gone"))
	assert.False(t, registry.Unregister("reader", "gone"))

	// Re-registration after unregister is allowed.
	assert.NoError(t, registry.Register("reader", "gone", counter))
}
