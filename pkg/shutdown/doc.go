// Package shutdown coordinates the graceful shutdown of an application made of
// many concurrently running goroutines.
//
// A single [Controller] is created per application run. Every goroutine that
// should be waited for gets its own [Monitor] from [Controller.Subscribe] and
// releases it when it returns. [Controller.Shutdown] broadcasts the shutdown
// signal to every monitor and then blocks until all of them are released.
//
//	controller := shutdown.New()
//
//	monitor := controller.Subscribe()
//	go func() {
//		defer monitor.Release()
//
//		select {
//		case <-monitor.Done():
//		case <-time.After(365 * 24 * time.Hour):
//		}
//	}()
//
//	controller.Shutdown()
//
// The coordination is cooperative: the controller never interrupts a
// goroutine, it only waits for monitors to be released. A monitor that is
// released without ever observing the signal still counts as finished.
package shutdown
