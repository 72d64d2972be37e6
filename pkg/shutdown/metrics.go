package shutdown

import (
	"strconv"

	"github.com/yanet-platform/shutdown/pkg/metrics"
)

// drainBuckets spans a quick drain of a few milliseconds up to a couple of
// minutes.
var drainBuckets = []float64{.005, .025, .1, .5, 1, 2.5, 5, 10, 30, 60, 120}

type controllerMetrics struct {
	live          metrics.Gauge
	subscribed    metrics.Counter
	released      metrics.CounterVec
	drainDuration metrics.Histogram
}

func newControllerMetrics(provider metrics.Provider, name string) *controllerMetrics {
	labels := metrics.WithConstLabels(metrics.Labels{"controller": name})

	return &controllerMetrics{
		live: provider.GetGauge(
			"shutdown_monitors_live",
			labels,
			metrics.WithDescription("Number of monitors not released yet."),
		),
		subscribed: provider.GetCounter(
			"shutdown_monitors_subscribed_total",
			labels,
			metrics.WithDescription("Total number of monitors handed out."),
		),
		released: provider.GetCounterVec(
			"shutdown_monitors_released_total",
			[]string{"signaled"},
			labels,
			metrics.WithDescription("Total number of released monitors, by whether they had observed the shutdown signal."),
		),
		drainDuration: provider.GetHistogram(
			"shutdown_drain_duration_seconds",
			drainBuckets,
			labels,
			metrics.WithDescription("Time from the shutdown signal until the last monitor was released."),
		),
	}
}

func (m *controllerMetrics) monitorReleased(signaled bool) {
	m.released.GetMetricWith(metrics.Labels{"signaled": strconv.FormatBool(signaled)}).Inc()
}
