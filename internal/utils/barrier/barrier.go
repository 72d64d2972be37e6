// Package barrier provides a reference-counted completion barrier. The barrier
// drains once every token handed out for it has been released.
package barrier

import (
	"context"
	"sync"
)

// state is shared by all tokens and the waiter of a single barrier.
type state struct {
	mu      sync.Mutex
	live    int           // number of tokens not released yet
	drained chan struct{} // closed when live drops to zero
}

// Token is a handle keeping the barrier open until it is released.
type Token struct {
	state *state
	once  sync.Once
}

// Waiter observes the barrier draining.
type Waiter struct {
	state *state
}

// New creates a barrier holding a single live token. The returned token is
// the template from which further tokens are cloned; the barrier cannot drain
// until it is released too.
func New() (*Token, *Waiter) {
	s := &state{
		live:    1,
		drained: make(chan struct{}),
	}
	return &Token{state: s}, &Waiter{state: s}
}

// Clone registers a new live token on the same barrier.
//
// Cloning works through a released token as long as some other token still
// keeps the barrier open. Once the barrier has drained it stays drained, and
// Clone returns false.
func (m *Token) Clone() (*Token, bool) {
	s := m.state

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == 0 {
		return nil, false
	}
	s.live++

	return &Token{state: s}, true
}

// Release drops the token. Calling it more than once has no effect.
func (m *Token) Release() {
	m.once.Do(m.state.release)
}

func (m *state) release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.live--
	if m.live == 0 {
		close(m.drained)
	}
}

// Done returns a channel that is closed when the barrier drains.
func (m *Waiter) Done() <-chan struct{} {
	return m.state.drained
}

// Wait blocks until every token has been released.
func (m *Waiter) Wait() {
	<-m.state.drained
}

// WaitContext blocks until every token has been released or ctx is done. It
// returns ctx.Err() in the latter case; the barrier keeps draining.
func (m *Waiter) WaitContext(ctx context.Context) error {
	select {
	case <-m.state.drained:
		return nil
	default:
	}

	select {
	case <-m.state.drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Live returns the number of tokens not released yet.
func (m *Waiter) Live() int {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	return m.state.live
}
