package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBroadcast verifies that the event is properly fired and received by a
// single receiver.
func TestBroadcast(t *testing.T) {
	sender := New()
	receiver := sender.Subscribe()

	wg := sync.WaitGroup{}

	// Start a goroutine that waits for the event.
	wg.Add(1)
	go func() {
		defer wg.Done()
		receiver.Wait()
	}()

	// Simulate some work before firing.
	time.Sleep(100 * time.Millisecond)
	assert.False(t, sender.Fired())

	sender.Fire()
	wg.Wait()
	assert.True(t, sender.Fired())
}

// TestBroadcast_TwoReceivers verifies that multiple receivers observe the
// event simultaneously.
func TestBroadcast_TwoReceivers(t *testing.T) {
	sender := New()

	wg := sync.WaitGroup{}
	for range 2 {
		receiver := sender.Subscribe()
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-receiver.Done()
		}()
	}

	time.Sleep(100 * time.Millisecond)
	sender.Fire()
	wg.Wait()
}

// TestBroadcast_LateSubscriber verifies that a receiver subscribed after the
// event has fired observes it without blocking.
func TestBroadcast_LateSubscriber(t *testing.T) {
	sender := New()

	sender.Fire()

	receiver := sender.Subscribe()
	select {
	case <-receiver.Done():
	default:
		t.Fatal("late receiver did not observe the fired event")
	}
}

// TestBroadcast_FireTwice verifies that firing more than once is a no-op.
func TestBroadcast_FireTwice(t *testing.T) {
	sender := New()
	sender.Fire()
	assert.NotPanics(t, sender.Fire)
	assert.True(t, sender.Fired())
}

// TestBroadcast_WaitContext verifies that WaitContext returns the context
// error when the context ends before the event and nil once it fired.
func TestBroadcast_WaitContext(t *testing.T) {
	sender := New()
	receiver := sender.Subscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, receiver.WaitContext(ctx), context.DeadlineExceeded)

	sender.Fire()

	// A fired event wins over an already cancelled context.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, receiver.WaitContext(cancelled))
}
