package app

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/internal/scheduler"
	"github.com/yanet-platform/shutdown/internal/server"
)

// TestApp_Run verifies that the application runs its workers and that every
// task is drained once the context is cancelled.
func TestApp_Run(t *testing.T) {
	workers := 3
	delay := 0.01
	config := Config{
		Server: &server.Config{HTTPAddr: "127.0.0.1:0", StopTimeout: time.Second},
		Workers: &WorkersConfig{
			Count:     &workers,
			Scheduler: scheduler.Config{DelayLoop: &delay},
		},
		ShutdownTimeout: 5 * time.Second,
	}
	app := New(config, log.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Second):
		t.Fatal("application did not stop")
	}

	select {
	case <-app.controller.Done():
	default:
		t.Fatal("controller has not drained")
	}

	jobs, ok := app.jobs.(promclient.Collector)
	require.True(t, ok)
	assert.Greater(t, testutil.ToFloat64(jobs), float64(0))
}

// TestApp_ServerFailure verifies that a server failure shuts the application
// down and is reported.
func TestApp_ServerFailure(t *testing.T) {
	config := Config{
		Server:          &server.Config{HTTPAddr: "127.0.0.1:-1"},
		ShutdownTimeout: 5 * time.Second,
	}
	app := New(config, log.NewNop())

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(context.Background())
	}()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.NotErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Second):
		t.Fatal("application did not stop")
	}
}
