// Package metric provides Prometheus instrumentation for the ingestion
// pipeline.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all pipeline-level metrics
type Metrics struct {
	// PipelineStatus reports the orchestrator state machine
	// (0=not_started, 1=in_progress, 2=completed, 3=failed)
	PipelineStatus *prometheus.GaugeVec

	// DocumentsExported counts documents materialized from the source collection
	DocumentsExported prometheus.Counter

	// RowsWritten counts rows persisted per dataset (feature_store, train, test)
	RowsWritten *prometheus.CounterVec

	// StageDuration observes per-stage wall time (export, feature_store, split)
	StageDuration *prometheus.HistogramVec

	// ErrorsTotal counts failures per component
	ErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all pipeline metrics
func NewMetrics() *Metrics {
	return &Metrics{
		PipelineStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "featureflow",
				Subsystem: "pipeline",
				Name:      "status",
				Help:      "Pipeline status (0=not_started, 1=in_progress, 2=completed, 3=failed)",
			},
			[]string{"pipeline"},
		),

		DocumentsExported: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "featureflow",
				Subsystem: "export",
				Name:      "documents_total",
				Help:      "Total number of documents exported from the source collection",
			},
		),

		RowsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "featureflow",
				Subsystem: "storage",
				Name:      "rows_written_total",
				Help:      "Total number of rows written per dataset",
			},
			[]string{"dataset"},
		),

		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "featureflow",
				Subsystem: "pipeline",
				Name:      "stage_duration_seconds",
				Help:      "Pipeline stage duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "featureflow",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"component"},
		),
	}
}
