package shutdown

import (
	"context"
	"sync"
	"sync/atomic"

	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/internal/utils/barrier"
	"github.com/yanet-platform/shutdown/internal/utils/broadcast"
)

// Monitor is held by a single goroutine for its whole lifetime. It lets the
// goroutine observe the shutdown signal and, once released, tells the
// Controller that the goroutine has finished.
//
// A Monitor must be released on every exit path of its goroutine, usually with
// defer:
//
//	monitor := controller.Subscribe()
//	go func() {
//		defer monitor.Release()
//		// ...
//	}()
type Monitor struct {
	id string

	// received is set once the shutdown signal has been observed and never
	// reset afterwards.
	received atomic.Bool

	notify  *broadcast.Receiver
	tracker *barrier.Token // nil when subscribed after the barrier drained

	releaseOnce sync.Once
	metrics     *controllerMetrics
	log         *log.Logger
}

// ID returns the unique identifier assigned to the monitor on subscription.
func (m *Monitor) ID() string {
	return m.id
}

// IsShutdown reports whether the shutdown signal has been observed by this
// monitor through Recv or RecvContext. It never blocks.
func (m *Monitor) IsShutdown() bool {
	return m.received.Load()
}

// Recv blocks until the shutdown signal has been received. It returns
// immediately if the signal has already been observed.
func (m *Monitor) Recv() {
	if m.received.Load() {
		return
	}

	m.notify.Wait()
	m.received.Store(true)
}

// RecvContext is like Recv but gives up when ctx is done, returning ctx.Err().
// The monitor stays unsignaled in that case.
func (m *Monitor) RecvContext(ctx context.Context) error {
	if m.received.Load() {
		return nil
	}

	if err := m.notify.WaitContext(ctx); err != nil {
		return err
	}
	m.received.Store(true)

	return nil
}

// Done returns a channel that is closed when shutdown begins, for use in
// select statements. Receiving from it does not mark the monitor as signaled;
// call Recv afterwards, which then returns immediately.
func (m *Monitor) Done() <-chan struct{} {
	return m.notify.Done()
}

// Release tells the Controller that the goroutine holding the monitor has
// finished. It is safe to call more than once; only the first call counts.
// Release does not require the shutdown signal to have been observed.
func (m *Monitor) Release() {
	m.releaseOnce.Do(func() {
		if m.tracker == nil {
			return
		}

		signaled := m.received.Load()
		m.tracker.Release()

		m.metrics.live.Dec()
		m.metrics.monitorReleased(signaled)
		m.log.Debug("monitor released", log.Bool("signaled", signaled))
	})
}
