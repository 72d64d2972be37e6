package app

import (
	"fmt"

	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/internal/scheduler"
	"github.com/yanet-platform/shutdown/internal/utils/workerpool"
	"github.com/yanet-platform/shutdown/pkg/metrics"
	"github.com/yanet-platform/shutdown/pkg/shutdown"
)

// ticker is a worker running a periodic job until shutdown.
type ticker struct {
	name      string
	scheduler *scheduler.Scheduler
	jobs      metrics.Counter
	logger    *log.Logger
}

var _ workerpool.Worker = &ticker{}

func newTicker(id int, config scheduler.Config, jobs metrics.Counter, logger *log.Logger) *ticker {
	name := fmt.Sprintf("ticker-%d", id)
	return &ticker{
		name:      name,
		scheduler: scheduler.New(config, scheduler.WithInitialDelay()),
		jobs:      jobs,
		logger:    logger.With(log.String("worker", name)),
	}
}

func (m *ticker) Name() string {
	return m.name
}

// Run executes the periodic job until the monitor reports shutdown.
func (m *ticker) Run(monitor *shutdown.Monitor) {
	m.scheduler.Run(monitor.Done(), func() error {
		m.jobs.Inc()
		m.logger.Debug("tick")
		return nil
	})

	monitor.Recv()
	m.logger.Debug("ticker observed shutdown")
}
