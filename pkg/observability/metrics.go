package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Object kinds reported by RecordCreate.
const (
	KindMessage = "message"
	KindHeader  = "msh"
)

// Status label values.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// MetricsConfig configures the metrics provider
type MetricsConfig struct {
	// Service identification
	ServiceName    string
	ServiceVersion string
	Environment    string

	Namespace        string    // Prometheus namespace (default: hl7)
	Subsystem        string    // Prometheus subsystem
	HistogramBuckets []float64 // Custom histogram buckets for parse latency, in milliseconds

	// Registerer receives the collectors (default: prometheus.DefaultRegisterer).
	// When it is also a prometheus.Gatherer, Handler serves from it.
	Registerer prometheus.Registerer

	// Labels to add to all metrics
	ConstLabels prometheus.Labels
}

// MetricsProvider records factory and parser activity
type MetricsProvider interface {
	// RecordCreate counts a message or header built by a factory
	RecordCreate(ctx context.Context, kind, status string)
	// RecordConfigUpdate counts a delimiter configuration change attempt
	RecordConfigUpdate(ctx context.Context, setting string, accepted bool)
	// RecordParse records one message parse
	RecordParse(ctx context.Context, status string, segments int, duration time.Duration)
	// RecordBatch records one batch parse
	RecordBatch(ctx context.Context, size int, status string, duration time.Duration)
}

// PrometheusMetricsProvider implements MetricsProvider using Prometheus
type PrometheusMetricsProvider struct {
	config MetricsConfig

	createTotal       *prometheus.CounterVec
	configUpdateTotal *prometheus.CounterVec
	parseDuration     *prometheus.HistogramVec
	parseTotal        *prometheus.CounterVec
	parseSegments     prometheus.Histogram
	batchDuration     *prometheus.HistogramVec
	batchSize         prometheus.Histogram
}

// NewMetricsProvider creates a new Prometheus metrics provider
func NewMetricsProvider(config MetricsConfig) (*PrometheusMetricsProvider, error) {
	if config.Namespace == "" {
		config.Namespace = "hl7"
	}
	if config.HistogramBuckets == nil {
		config.HistogramBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}
	}
	if config.Registerer == nil {
		config.Registerer = prometheus.DefaultRegisterer
	}

	labels := prometheus.Labels{}
	for k, v := range config.ConstLabels {
		labels[k] = v
	}
	config.ConstLabels = labels
	if config.ServiceName != "" {
		config.ConstLabels["service"] = config.ServiceName
	}
	if config.ServiceVersion != "" {
		config.ConstLabels["version"] = config.ServiceVersion
	}
	if config.Environment != "" {
		config.ConstLabels["environment"] = config.Environment
	}

	provider := &PrometheusMetricsProvider{config: config}
	provider.initializeMetrics()

	if err := provider.registerMetrics(); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return provider, nil
}

func (p *PrometheusMetricsProvider) initializeMetrics() {
	p.createTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "factory_create_total",
			Help:        "Total number of messages and headers built by a factory",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"kind", "status"},
	)

	p.configUpdateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "factory_config_update_total",
			Help:        "Total number of delimiter configuration update attempts",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"setting", "status"},
	)

	p.parseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "parse_duration_milliseconds",
			Help:        "Duration of HL7 message parsing in milliseconds",
			Buckets:     p.config.HistogramBuckets,
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"status"},
	)

	p.parseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "parse_total",
			Help:        "Total number of HL7 messages parsed",
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"status"},
	)

	p.parseSegments = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "parse_segments",
			Help:        "Number of segments in successfully parsed messages",
			Buckets:     []float64{1, 2, 5, 10, 25, 50, 100, 250},
			ConstLabels: p.config.ConstLabels,
		},
	)

	p.batchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "batch_duration_milliseconds",
			Help:        "Duration of HL7 batch parsing in milliseconds",
			Buckets:     p.config.HistogramBuckets,
			ConstLabels: p.config.ConstLabels,
		},
		[]string{"status"},
	)

	p.batchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   p.config.Namespace,
			Subsystem:   p.config.Subsystem,
			Name:        "batch_size",
			Help:        "Number of messages in HL7 parse batches",
			Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			ConstLabels: p.config.ConstLabels,
		},
	)
}

// registerMetrics registers every collector. A collector already registered
// by an earlier provider on the same registry is swapped for the registered
// one, so both providers feed the same series.
func (p *PrometheusMetricsProvider) registerMetrics() error {
	var err error
	r := p.config.Registerer

	if p.createTotal, err = register(r, p.createTotal); err != nil {
		return err
	}
	if p.configUpdateTotal, err = register(r, p.configUpdateTotal); err != nil {
		return err
	}
	if p.parseDuration, err = register(r, p.parseDuration); err != nil {
		return err
	}
	if p.parseTotal, err = register(r, p.parseTotal); err != nil {
		return err
	}
	if p.parseSegments, err = register(r, p.parseSegments); err != nil {
		return err
	}
	if p.batchDuration, err = register(r, p.batchDuration); err != nil {
		return err
	}
	if p.batchSize, err = register(r, p.batchSize); err != nil {
		return err
	}

	return nil
}

func register[C prometheus.Collector](r prometheus.Registerer, c C) (C, error) {
	err := r.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// RecordCreate counts a message or header built by a factory
func (p *PrometheusMetricsProvider) RecordCreate(ctx context.Context, kind, status string) {
	p.createTotal.WithLabelValues(kind, status).Inc()
}

// RecordConfigUpdate counts a configuration update attempt
func (p *PrometheusMetricsProvider) RecordConfigUpdate(ctx context.Context, setting string, accepted bool) {
	status := StatusAccepted
	if !accepted {
		status = StatusRejected
	}
	p.configUpdateTotal.WithLabelValues(setting, status).Inc()
}

// RecordParse records one message parse
func (p *PrometheusMetricsProvider) RecordParse(ctx context.Context, status string, segments int, duration time.Duration) {
	ms := float64(duration.Microseconds()) / 1000
	p.parseDuration.WithLabelValues(status).Observe(ms)
	p.parseTotal.WithLabelValues(status).Inc()
	if status == StatusOK {
		p.parseSegments.Observe(float64(segments))
	}
}

// RecordBatch records one batch parse
func (p *PrometheusMetricsProvider) RecordBatch(ctx context.Context, size int, status string, duration time.Duration) {
	ms := float64(duration.Microseconds()) / 1000
	p.batchDuration.WithLabelValues(status).Observe(ms)
	p.batchSize.Observe(float64(size))
}

// Handler returns an HTTP handler exposing the metrics. It serves from the
// configured Registerer when that is a Gatherer, and from the default
// registry otherwise.
func (p *PrometheusMetricsProvider) Handler() http.Handler {
	if g, ok := p.config.Registerer.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// NoopMetricsProvider discards every measurement.
type NoopMetricsProvider struct{}

// RecordCreate does nothing
func (NoopMetricsProvider) RecordCreate(context.Context, string, string) {}

// RecordConfigUpdate does nothing
func (NoopMetricsProvider) RecordConfigUpdate(context.Context, string, bool) {}

// RecordParse does nothing
func (NoopMetricsProvider) RecordParse(context.Context, string, int, time.Duration) {}

// RecordBatch does nothing
func (NoopMetricsProvider) RecordBatch(context.Context, int, string, time.Duration) {}
