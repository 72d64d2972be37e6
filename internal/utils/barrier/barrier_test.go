package barrier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drained reports whether the waiter's barrier has drained without blocking.
func drained(waiter *Waiter) bool {
	select {
	case <-waiter.Done():
		return true
	default:
		return false
	}
}

// TestBarrier_TemplateOnly verifies that a barrier with no clones drains as
// soon as the template token is released.
func TestBarrier_TemplateOnly(t *testing.T) {
	template, waiter := New()
	assert.Equal(t, 1, waiter.Live())
	assert.False(t, drained(waiter))

	template.Release()
	waiter.Wait()
	assert.Equal(t, 0, waiter.Live())
}

// TestBarrier_HeldByTemplate verifies that the barrier never drains while the
// template token is held, even if every clone is released.
func TestBarrier_HeldByTemplate(t *testing.T) {
	template, waiter := New()

	clone, ok := template.Clone()
	require.True(t, ok)
	clone.Release()

	assert.False(t, drained(waiter))
	assert.Equal(t, 1, waiter.Live())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, waiter.WaitContext(ctx), context.DeadlineExceeded)
}

// TestBarrier_WaitsForClones verifies that Wait returns only after the last
// clone is released.
func TestBarrier_WaitsForClones(t *testing.T) {
	template, waiter := New()

	const clones = 32
	tokens := make([]*Token, 0, clones)
	for range clones {
		token, ok := template.Clone()
		require.True(t, ok)
		tokens = append(tokens, token)
	}
	assert.Equal(t, clones+1, waiter.Live())

	template.Release()

	wg := sync.WaitGroup{}
	for _, token := range tokens {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(10 * time.Millisecond)
			token.Release()
		}()
	}

	waiter.Wait()
	wg.Wait()
	assert.Equal(t, 0, waiter.Live())
}

// TestBarrier_ReleaseTwice verifies that releasing a token more than once
// does not steal the count of another token.
func TestBarrier_ReleaseTwice(t *testing.T) {
	template, waiter := New()
	clone, ok := template.Clone()
	require.True(t, ok)

	template.Release()
	template.Release()
	assert.False(t, drained(waiter))
	assert.Equal(t, 1, waiter.Live())

	clone.Release()
	assert.True(t, drained(waiter))
}

// TestBarrier_CloneAfterTemplateRelease verifies that clones can still be made
// through a released template while other tokens hold the barrier open, and
// not after it drained.
func TestBarrier_CloneAfterTemplateRelease(t *testing.T) {
	template, waiter := New()
	holder, ok := template.Clone()
	require.True(t, ok)

	template.Release()

	late, ok := template.Clone()
	require.True(t, ok)
	holder.Release()
	assert.False(t, drained(waiter))

	late.Release()
	assert.True(t, drained(waiter))

	_, ok = template.Clone()
	assert.False(t, ok)
}
