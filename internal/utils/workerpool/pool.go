// Package workerpool runs workers concurrently, each under its own shutdown
// monitor, so that the controller waits for every worker to finish.
package workerpool

import (
	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/pkg/shutdown"
)

// Worker is a task executed by the pool. Run must return once the monitor
// reports shutdown.
type Worker interface {
	Name() string
	Run(monitor *shutdown.Monitor)
}

// Pool starts the workers it receives on a shutdown controller.
type Pool struct {
	controller *shutdown.Controller
	worker     chan Worker   // channel through which workers are sent to be started
	done       chan struct{} // closed when Run returns
	log        *log.Logger
}

// New creates a new instance of Pool bound to controller.
func New(controller *shutdown.Controller, logger *log.Logger) *Pool {
	return &Pool{
		controller: controller,
		worker:     make(chan Worker),
		done:       make(chan struct{}),
		log:        logger.With(log.String("component", "workerpool")),
	}
}

// Run starts incoming workers until the monitor reports shutdown. Every
// worker gets its own monitor, subscribed before the worker's goroutine
// starts.
func (m *Pool) Run(monitor *shutdown.Monitor) {
	defer close(m.done)

	for {
		select {
		case w := <-m.worker:
			m.start(w)
		case <-monitor.Done():
			monitor.Recv()
			m.log.Info("worker pool stopped accepting workers")
			return
		}
	}
}

// Add hands a worker over to the pool. It blocks until Run picks the worker
// up and returns false if the pool has already stopped.
func (m *Pool) Add(w Worker) bool {
	select {
	case m.worker <- w:
		return true
	case <-m.done:
		return false
	}
}

func (m *Pool) start(w Worker) {
	logger := m.log.With(log.String("worker", w.Name()))

	m.controller.Go(func(monitor *shutdown.Monitor) {
		logger.Debug("worker started", log.String("monitor", monitor.ID()))
		w.Run(monitor)
		logger.Debug("worker finished")
	})
}
