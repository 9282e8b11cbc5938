package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fbp_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the fire behaviour pipeline.
type Metrics struct {
	MessagesConsumed   prometheus.Counter
	PredictionsEmitted prometheus.Counter
	TransformErrors    prometheus.Counter
	ValidationErrors   prometheus.Counter
	PipelineRunning    prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Model output metrics.
	PredictionsByFireType *prometheus.CounterVec   // labels: fire_type={surface,intermittent_crown,crown}
	HeadFireIntensity     *prometheus.HistogramVec // labels: fuel_type

	// Elevation lookup metrics.
	ElevationRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	ElevationCache       *prometheus.CounterVec // labels: result={hit,miss}
	ElevationAPIDuration prometheus.Histogram
	ElevationEnabled     prometheus.Gauge

	ArchiveWrites *prometheus.CounterVec // labels: outcome={success,error}
}

// Intensity class boundaries in kW/m.
var intensityBuckets = []float64{10, 500, 2000, 4000, 10000, 30000, 100000}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total weather observations read from the source topic.",
		}),
		PredictionsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_emitted_total",
			Help:      "Total fire behaviour predictions written to the sinks.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total observations that could not be evaluated.",
		}),
		ValidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "Total observations rejected for out-of-range inputs.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of observations per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PredictionsByFireType: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_by_fire_type_total",
			Help:      "Predictions by classified fire type.",
		}, []string{"fire_type"}),
		HeadFireIntensity: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "head_fire_intensity_kw_per_m",
			Help:      "Predicted head fire intensity by fuel type.",
			Buckets:   intensityBuckets,
		}, []string{"fuel_type"}),
		ElevationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elevation_requests_total",
			Help:      "Elevation API requests by outcome.",
		}, []string{"outcome"}),
		ElevationCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elevation_cache_total",
			Help:      "Elevation cache lookups by result.",
		}, []string{"result"}),
		ElevationAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "elevation_api_duration_seconds",
			Help:      "Mapbox Tilequery request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ElevationEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "elevation_enabled",
			Help:      "1 when elevation enrichment is enabled, 0 otherwise.",
		}),
		ArchiveWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_writes_total",
			Help:      "SQLite archive batch writes by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.PredictionsEmitted,
		m.TransformErrors,
		m.ValidationErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.PredictionsByFireType,
		m.HeadFireIntensity,
		m.ElevationRequests,
		m.ElevationCache,
		m.ElevationAPIDuration,
		m.ElevationEnabled,
		m.ArchiveWrites,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_consumed_total"}),
		PredictionsEmitted:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "predictions_emitted_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "transform_errors_total"}),
		ValidationErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "validation_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_processing_duration_seconds"}),
		PredictionsByFireType:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "predictions_by_fire_type_total"}, []string{"fire_type"}),
		HeadFireIntensity:       prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "head_fire_intensity_kw_per_m", Buckets: intensityBuckets}, []string{"fuel_type"}),
		ElevationRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "elevation_requests_total"}, []string{"outcome"}),
		ElevationCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "elevation_cache_total"}, []string{"result"}),
		ElevationAPIDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "elevation_api_duration_seconds"}),
		ElevationEnabled:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "elevation_enabled"}),
		ArchiveWrites:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "archive_writes_total"}, []string{"outcome"}),
	}
}
