package shutdown

import (
	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/pkg/metrics"
)

type options struct {
	name    string
	logger  *log.Logger
	metrics metrics.Provider
}

func defaultOptions() options {
	return options{
		name:    "default",
		logger:  log.NewNop(),
		metrics: &metrics.NopProvider{},
	}
}

// Option configures a Controller.
type Option func(*options)

// WithName sets the controller name used in logs and as a metric label.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger. Controllers log nothing by default.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the provider the controller registers its metrics with.
func WithMetrics(provider metrics.Provider) Option {
	return func(o *options) {
		o.metrics = provider
	}
}
