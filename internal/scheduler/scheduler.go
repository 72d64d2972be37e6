// Package scheduler runs a job periodically, with retries, until a stop
// channel is closed.
package scheduler

import (
	"math/rand/v2"
	"time"
)

// Scheduler holds the configuration and initial delay for running jobs.
type Scheduler struct {
	config    Config        // holds the scheduling configuration
	initDelay time.Duration // initial random delay before the first run
}

// Option represents a function that configures a Scheduler instance.
type Option func(*Scheduler)

// WithInitialDelay returns an Option that applies an initial random delay to
// the Scheduler before running the job. The delay is a random value between 0
// and the configured loop delay, which spreads out jobs started together.
func WithInitialDelay() Option {
	return func(s *Scheduler) {
		s.initDelay = time.Duration(rand.Float64() * float64(s.config.GetDelayLoop()))
	}
}

// New creates a new Scheduler instance.
func New(config Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		config: config,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes job according to the configured delays until stop is closed.
// A failed job is retried after the retry delay, up to the configured number
// of retries. The job in progress when stop closes is allowed to finish.
func (m *Scheduler) Run(stop <-chan struct{}, job func() error) {
	// NOTE: a single timer serves both retries and the main loop, since the
	// scheduler never waits for both at once. Reset is therefore always
	// called on an expired timer.
	timer := time.NewTimer(m.initDelay)
	defer timer.Stop()

	// Checked up front so that an expired timer does not race with an
	// already closed stop channel in the select below.
	if stopped(stop) {
		return
	}

	select {
	case <-stop:
		return
	case <-timer.C:
	}

	retries := m.config.GetRetries()
	retryDelay := m.config.GetRetryDelay()
	loopDelay := m.config.GetDelayLoop()

	for {
		for i := 0; i <= retries; i++ {
			if err := job(); err == nil || i == retries {
				break
			}

			timer.Reset(retryDelay)
			select {
			case <-stop:
				return
			case <-timer.C:
			}
		}

		timer.Reset(loopDelay)
		select {
		case <-stop:
			return
		case <-timer.C:
		}
	}
}

// InitialDelay returns the initial random delay applied to the scheduler.
func (m *Scheduler) InitialDelay() time.Duration {
	return m.initDelay
}

func stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}
