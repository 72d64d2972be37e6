// Package broadcast provides a single-shot fan-out notification: one sender
// fires an event once, and every receiver subscribed to it observes that event.
package broadcast

import (
	"context"
	"sync"
)

// Sender owns the one-time event.
type Sender struct {
	once   sync.Once     // ensures the event is only fired once
	notify chan struct{} // closed when the event fires
}

// New creates a new Sender that has not fired yet.
func New() *Sender {
	return &Sender{
		notify: make(chan struct{}),
	}
}

// Subscribe returns a new independent Receiver. A receiver subscribed after
// the event fired observes it immediately.
func (m *Sender) Subscribe() *Receiver {
	return &Receiver{notify: m.notify}
}

// Fire triggers the event if it hasn't been triggered already. It closes the
// notify channel to wake all receivers.
func (m *Sender) Fire() {
	m.once.Do(func() { close(m.notify) })
}

// Fired reports whether the event has been fired.
func (m *Sender) Fired() bool {
	select {
	case <-m.notify:
		return true
	default:
		return false
	}
}

// Receiver observes the event fired by its Sender.
//
// Closing a channel cannot overflow, so a receiver can never miss or lag
// behind the event.
type Receiver struct {
	notify <-chan struct{}
}

// Done returns a channel that is closed when the event fires.
func (m *Receiver) Done() <-chan struct{} {
	return m.notify
}

// Wait blocks until the event fires.
func (m *Receiver) Wait() {
	<-m.notify
}

// WaitContext blocks until the event fires or ctx is done, whichever happens
// first. It returns ctx.Err() in the latter case.
func (m *Receiver) WaitContext(ctx context.Context) error {
	// Prefer the event when both are ready.
	select {
	case <-m.notify:
		return nil
	default:
	}

	select {
	case <-m.notify:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
