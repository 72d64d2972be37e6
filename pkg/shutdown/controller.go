package shutdown

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/internal/utils/barrier"
	"github.com/yanet-platform/shutdown/internal/utils/broadcast"
)

// Controller triggers the shutdown of an application and waits until every
// Monitor it handed out has been released.
//
// A Controller moves from active to draining on the first call to Shutdown or
// ShutdownContext, and from draining to complete once the last monitor is
// released. It never goes back.
type Controller struct {
	// notify fires the shutdown signal to every monitor.
	notify *broadcast.Sender

	// tracker is the controller's own completion token. Every monitor holds
	// a clone of it. It is released when shutdown begins, otherwise the
	// barrier could never drain.
	tracker *barrier.Token
	// waiter observes the completion barrier draining.
	waiter *barrier.Waiter
	// completed is closed after the drain has been recorded.
	completed chan struct{}

	beginOnce sync.Once
	startedAt time.Time

	metrics *controllerMetrics
	log     *log.Logger
}

// New creates a new Controller.
func New(opts ...Option) *Controller {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	tracker, waiter := barrier.New()

	return &Controller{
		notify:  broadcast.New(),
		tracker:   tracker,
		waiter:    waiter,
		completed: make(chan struct{}),
		metrics:   newControllerMetrics(options.metrics, options.name),
		log:       options.logger.With(log.String("controller", options.name)),
	}
}

// Subscribe creates a new Monitor that observes the shutdown signal. The
// returned monitor must be released once its goroutine finishes.
//
// Subscribing after shutdown has begun returns a monitor that is already
// signaled. Such a monitor is still waited for while the controller is
// draining; once draining is complete it is not tracked at all.
func (m *Controller) Subscribe() *Monitor {
	id := uuid.NewString()
	monitor := &Monitor{
		id:      id,
		notify:  m.notify.Subscribe(),
		metrics: m.metrics,
		log:     m.log.With(log.String("monitor", id)),
	}

	if m.notify.Fired() {
		monitor.received.Store(true)
		monitor.log.Debug("subscribed after shutdown has begun")
	}

	if tracker, ok := m.tracker.Clone(); ok {
		monitor.tracker = tracker
		m.metrics.subscribed.Inc()
		m.metrics.live.Inc()
	}

	return monitor
}

// Go runs fn in a new goroutine with a freshly subscribed Monitor. The monitor
// is subscribed before the goroutine starts and released when fn returns or
// panics.
func (m *Controller) Go(fn func(monitor *Monitor)) {
	monitor := m.Subscribe()
	go func() {
		defer monitor.Release()
		fn(monitor)
	}()
}

// Shutdown sends the shutdown signal to every monitor and blocks until all of
// them have been released.
//
// Shutdown may be called more than once and from several goroutines. The
// signal is sent only once and every call waits for the same completion.
func (m *Controller) Shutdown() {
	m.begin()
	<-m.completed
}

// ShutdownContext is like Shutdown but stops waiting when ctx is done,
// returning ctx.Err(). The signal stays sent and draining goes on in the
// background; Done reports when it finishes.
func (m *Controller) ShutdownContext(ctx context.Context) error {
	m.begin()

	select {
	case <-m.completed:
		return nil
	case <-ctx.Done():
	}

	// Both may be ready at once; completion wins.
	select {
	case <-m.completed:
		return nil
	default:
	}

	m.log.Warn("shutdown is still draining", log.Error(ctx.Err()))
	return ctx.Err()
}

// Done returns a channel that is closed once shutdown has completed, that is
// after the shutdown signal was sent and every monitor was released.
func (m *Controller) Done() <-chan struct{} {
	return m.completed
}

// begin fires the signal, drops the controller's own completion token and
// starts recording the drain, whichever caller ends up waiting for it.
func (m *Controller) begin() {
	m.beginOnce.Do(func() {
		m.startedAt = time.Now()
		// The controller's own token is still live here.
		m.log.Info("shutdown initiated", log.Int("monitors", m.waiter.Live()-1))

		m.notify.Fire()
		m.tracker.Release()

		go func() {
			m.waiter.Wait()
			m.complete()
		}()
	})
}

func (m *Controller) complete() {
	duration := time.Since(m.startedAt)
	m.metrics.drainDuration.Observe(duration.Seconds())
	m.log.Info("shutdown complete", log.Duration("duration", duration))

	close(m.completed)
}
