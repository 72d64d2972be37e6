package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry keeps one collector of kind T per name on top of a shared
// [prometheus.Registry], so repeated lookups return the same collector.
type Registry[T prometheus.Collector] struct {
	registry *prometheus.Registry
	metrics  map[string]T
	mu       sync.Mutex
}

func newRegistry[T prometheus.Collector](registry *prometheus.Registry) *Registry[T] {
	return &Registry[T]{
		registry: registry,
		metrics:  make(map[string]T),
	}
}

// GetOrCreate returns the collector registered under name, constructing and
// registering it on first use.
func (m *Registry[T]) GetOrCreate(name string, constructor func() T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if metric, exists := m.metrics[name]; exists {
		return metric, nil
	}

	metric := constructor()
	if err := m.registry.Register(metric); err != nil {
		// Another provider kind may have registered the same collector
		// already; reuse it if the types line up.
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				m.metrics[name] = existing
				return existing, nil
			}
		}
		return metric, err
	}

	m.metrics[name] = metric

	return metric, nil
}

func (m *Registry[T]) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, metric := range m.metrics {
		m.registry.Unregister(metric)
	}
	m.metrics = make(map[string]T)
}
