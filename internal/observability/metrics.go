package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the load path and the
// dashboard API.
type Metrics struct {
	Loads        *prometheus.CounterVec // labels: outcome={success,load_error,schema_error}
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}
	RowsKept     prometheus.Counter
	RowsDropped  prometheus.Counter
	LoadDuration prometheus.Histogram

	DatasetRecords prometheus.Gauge
	RenderErrors   prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "activity_map",
			Name:      "loads_total",
			Help:      "Spreadsheet load attempts by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "activity_map",
			Name:      "cache_lookups_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		RowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "activity_map",
			Name:      "rows_kept_total",
			Help:      "Rows that survived coordinate extraction.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "activity_map",
			Name:      "rows_dropped_total",
			Help:      "Rows dropped for missing or unparseable coordinates.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "activity_map",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete read-and-normalize pass.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "activity_map",
			Name:      "dataset_records",
			Help:      "Records in the most recently served dataset.",
		}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "activity_map",
			Name:      "render_errors_total",
			Help:      "View-model build failures degraded to the table fallback.",
		}),
	}

	prometheus.MustRegister(
		m.Loads,
		m.CacheLookups,
		m.RowsKept,
		m.RowsDropped,
		m.LoadDuration,
		m.DatasetRecords,
		m.RenderErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Loads:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "activity_map", Name: "loads_total"}, []string{"outcome"}),
		CacheLookups:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "activity_map", Name: "cache_lookups_total"}, []string{"result"}),
		RowsKept:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "activity_map", Name: "rows_kept_total"}),
		RowsDropped:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "activity_map", Name: "rows_dropped_total"}),
		LoadDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "activity_map", Name: "load_duration_seconds"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "activity_map", Name: "dataset_records"}),
		RenderErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "activity_map", Name: "render_errors_total"}),
	}
}
