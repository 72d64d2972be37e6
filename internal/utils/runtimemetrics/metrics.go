// Package runtimemetrics exposes Go runtime and process metrics.
package runtimemetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler returns an HTTP handler serving the process and Go collectors
// from a registry of its own, so they never clash with application metrics.
func NewHandler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
