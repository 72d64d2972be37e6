// Package prometheus implements [metrics.Metrics] on top of a private
// Prometheus registry.
package prometheus

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/pkg/metrics"
)

type Provider struct {
	registry  *prometheus.Registry
	namespace string

	counters    *Registry[prometheus.Counter]
	gauges      *Registry[prometheus.Gauge]
	histograms  *Registry[prometheus.Histogram]
	countersVec *Registry[*CounterVec]

	log *log.Logger
}

var _ metrics.Metrics = &Provider{}

// Option configures a Provider.
type Option func(*Provider)

// WithNamespace prefixes every metric name with namespace.
func WithNamespace(namespace string) Option {
	return func(p *Provider) {
		p.namespace = namespace
	}
}

func NewProvider(logger *log.Logger, opts ...Option) *Provider {
	registry := prometheus.NewRegistry()
	p := &Provider{
		registry:    registry,
		counters:    newRegistry[prometheus.Counter](registry),
		gauges:      newRegistry[prometheus.Gauge](registry),
		histograms:  newRegistry[prometheus.Histogram](registry),
		countersVec: newRegistry[*CounterVec](registry),
		log:         logger.With(log.String("metrics_provider", "prometheus")),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the underlying registry, e.g. for tests or to attach
// additional collectors.
func (m *Provider) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Provider) fqName(name string) string {
	return prometheus.BuildFQName(m.namespace, "", name)
}

func (m *Provider) GetCounter(name string, opts ...metrics.MetricOption) metrics.Counter {
	options := metrics.ApplyOpts(opts)

	counter, err := m.counters.GetOrCreate(name, func() prometheus.Counter {
		return prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        m.fqName(name),
				Help:        options.Description,
				ConstLabels: prometheus.Labels(options.ConstLabels),
			},
		)
	})
	if err != nil {
		m.log.Error("failed to create counter", log.String("name", name), log.Error(err))
		return &metrics.NopCounter{}
	}

	return counter
}

func (m *Provider) GetGauge(name string, opts ...metrics.MetricOption) metrics.Gauge {
	options := metrics.ApplyOpts(opts)

	gauge, err := m.gauges.GetOrCreate(name, func() prometheus.Gauge {
		return prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        m.fqName(name),
				Help:        options.Description,
				ConstLabels: prometheus.Labels(options.ConstLabels),
			},
		)
	})
	if err != nil {
		m.log.Error("failed to create gauge", log.String("name", name), log.Error(err))
		return &metrics.NopGauge{}
	}

	return gauge
}

func (m *Provider) GetHistogram(name string, buckets []float64, opts ...metrics.MetricOption) metrics.Histogram {
	options := metrics.ApplyOpts(opts)

	histogram, err := m.histograms.GetOrCreate(name, func() prometheus.Histogram {
		return prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        m.fqName(name),
				Help:        options.Description,
				Buckets:     buckets,
				ConstLabels: prometheus.Labels(options.ConstLabels),
			},
		)
	})
	if err != nil {
		m.log.Error("failed to create histogram", log.String("name", name), log.Error(err))
		return &metrics.NopHistogram{}
	}

	return histogram
}

func (m *Provider) GetCounterVec(name string, labelNames []string, opts ...metrics.MetricOption) metrics.CounterVec {
	options := metrics.ApplyOpts(opts)

	counterVec, err := m.countersVec.GetOrCreate(name, func() *CounterVec {
		return newCounterVec(
			prometheus.CounterOpts{
				Name:        m.fqName(name),
				Help:        options.Description,
				ConstLabels: prometheus.Labels(options.ConstLabels),
			},
			labelNames,
			m.log,
		)
	})
	if err != nil {
		m.log.Error("failed to create counter vector", log.String("name", name), log.Error(err))
		return &metrics.NopCounterVec{}
	}

	return counterVec
}

func (m *Provider) GetHTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Shutdown unregisters every metric created by the provider.
func (m *Provider) Shutdown(_ context.Context) error {
	m.counters.Shutdown()
	m.gauges.Shutdown()
	m.histograms.Shutdown()
	m.countersVec.Shutdown()

	return nil
}
