package app

import (
	"context"
	"fmt"

	log "go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanet-platform/shutdown/internal/server"
	"github.com/yanet-platform/shutdown/internal/utils/coalescer"
	"github.com/yanet-platform/shutdown/internal/utils/workerpool"
	"github.com/yanet-platform/shutdown/pkg/metrics"
	"github.com/yanet-platform/shutdown/pkg/metrics/prometheus"
	"github.com/yanet-platform/shutdown/pkg/shutdown"
)

// App runs a set of periodic workers and a metrics server, and shuts all of
// them down through a single shutdown controller.
type App struct {
	config Config

	controller *shutdown.Controller
	pool       *workerpool.Pool
	server     *server.Server

	metrics *prometheus.Provider
	jobs    metrics.Counter
	logger  *log.Logger
}

// New creates a new instance of the application.
func New(config Config, logger *log.Logger) *App {
	provider := prometheus.NewProvider(logger)

	controller := shutdown.New(
		shutdown.WithName("shutdownd"),
		shutdown.WithLogger(logger),
		shutdown.WithMetrics(provider),
	)

	serverConfig := coalescer.Coalesce(config.Server, defaultServerConfig())

	return &App{
		config:     config,
		controller: controller,
		pool:       workerpool.New(controller, logger),
		server:     server.New(serverConfig, controller, provider, logger),
		metrics:    provider,
		jobs: provider.GetCounter(
			"jobs_total",
			metrics.WithDescription("Total number of periodic jobs executed by the workers."),
		),
		logger: logger,
	}
}

// Run starts every component and blocks until ctx is done or the server
// fails, then shuts everything down and waits for it to finish.
func (m *App) Run(ctx context.Context) error {
	wg, ctx := errgroup.WithContext(ctx)

	// Monitors are subscribed before their goroutines start so that
	// shutdown cannot miss them.
	serverMonitor := m.controller.Subscribe()
	wg.Go(func() error {
		defer serverMonitor.Release()
		return m.server.Run(serverMonitor)
	})

	m.controller.Go(m.pool.Run)

	workers := m.config.Workers
	for i := range workers.GetCount() {
		if !m.pool.Add(newTicker(i, workers.GetScheduler(), m.jobs, m.logger)) {
			break
		}
	}

	wg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), m.config.GetShutdownTimeout())
		defer cancel()

		if err := m.controller.ShutdownContext(shutdownCtx); err != nil {
			return fmt.Errorf("failed to wait for tasks to finish: %w", err)
		}

		if err := m.metrics.Shutdown(shutdownCtx); err != nil {
			m.logger.Error("failed to shutdown metrics", log.Error(err))
		}

		return ctx.Err()
	})

	return wg.Wait()
}
