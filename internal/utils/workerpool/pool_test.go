package workerpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/pkg/shutdown"
)

// blockingWorker waits for shutdown and counts how many times it finished.
type blockingWorker struct {
	finished *atomic.Int32
}

func (w blockingWorker) Name() string {
	return "blocking"
}

func (w blockingWorker) Run(monitor *shutdown.Monitor) {
	monitor.Recv()
	time.Sleep(10 * time.Millisecond)
	w.finished.Add(1)
}

// TestPool_DrainsWorkers verifies that controller shutdown waits for every
// worker started by the pool.
func TestPool_DrainsWorkers(t *testing.T) {
	controller := shutdown.New()
	pool := New(controller, log.NewNop())

	controller.Go(pool.Run)

	var finished atomic.Int32
	const workers = 8
	for range workers {
		assert.True(t, pool.Add(blockingWorker{finished: &finished}))
	}

	controller.Shutdown()
	assert.Equal(t, int32(workers), finished.Load())
}

// TestPool_AddAfterStop verifies that adding a worker to a stopped pool is
// rejected instead of blocking forever.
func TestPool_AddAfterStop(t *testing.T) {
	controller := shutdown.New()
	pool := New(controller, log.NewNop())

	controller.Go(pool.Run)
	controller.Shutdown()

	var finished atomic.Int32
	assert.False(t, pool.Add(blockingWorker{finished: &finished}))
	assert.Equal(t, int32(0), finished.Load())
}
