package observability

import (
	"errors"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "unit_converter"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Conversion metrics, shared by the HTTP API and the stream pipeline.
	Conversions         *prometheus.CounterVec   // labels: category, outcome={success,unknown_unit,invalid}
	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	// Stream pipeline metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Conversions,
		m.HTTPRequestDuration,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions by category and outcome.",
		}, []string{"category", "outcome"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request duration in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total conversion requests read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total conversion results written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total messages skipped because they could not be decoded.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the stream pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-convert-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// Conversion outcome label values.
const (
	OutcomeSuccess     = "success"
	OutcomeUnknownUnit = "unknown_unit"
	OutcomeInvalid     = "invalid"
)

// ObserveConversion increments the conversion counter for category and outcome.
func (m *Metrics) ObserveConversion(category, outcome string) {
	m.Conversions.WithLabelValues(category, outcome).Inc()
}

// ConversionOutcome maps a conversion error to its outcome label.
func ConversionOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrUnknownUnit):
		return OutcomeUnknownUnit
	default:
		return OutcomeInvalid
	}
}

// CategoryLabel bounds the category label to the known categories.
func CategoryLabel(c domain.Category) string {
	parsed, err := domain.ParseCategory(string(c))
	if err != nil {
		return "unknown"
	}
	return string(parsed)
}
