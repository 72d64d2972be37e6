// Package metrics defines the metrics abstraction used across the module.
// Implementations live in subpackages; NopMetrics discards everything.
package metrics

import (
	"context"
	"net/http"
)

type Metrics interface {
	Provider
	Gatherer
}

type Provider interface {
	GetCounter(name string, opts ...MetricOption) Counter
	GetGauge(name string, opts ...MetricOption) Gauge
	GetHistogram(name string, buckets []float64, opts ...MetricOption) Histogram
	GetCounterVec(name string, labelNames []string, opts ...MetricOption) CounterVec

	Shutdown(ctx context.Context) error
}

type Gatherer interface {
	GetHTTPHandler() http.Handler
}

type Counter interface {
	Inc()
	Add(float64)
}

type Gauge interface {
	Inc()
	Dec()
	Set(float64)
}

type Histogram interface {
	Observe(float64)
}

type Labels map[string]string

type CounterVec interface {
	GetMetricWith(Labels) Counter
}

type MetricOption func(opts *MetricOpts)

// MetricOpts holds optional metric attributes.
type MetricOpts struct {
	ConstLabels Labels
	Description string
}

func WithDescription(description string) MetricOption {
	return func(opts *MetricOpts) {
		opts.Description = description
	}
}

func WithConstLabels(labels Labels) MetricOption {
	return func(opts *MetricOpts) {
		opts.ConstLabels = labels
	}
}

// ApplyOpts folds opts into a single MetricOpts value.
func ApplyOpts(opts []MetricOption) MetricOpts {
	var options MetricOpts
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
