package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) error { return nil }

func TestPool_RunsQueuedJobsBeforeStopReturns(t *testing.T) {
	var ran atomic.Int32
	pool := NewPool(2, 10)
	pool.Start()

	for range 5 {
		require.NoError(t, pool.Submit(context.Background(), JobFunc(func(context.Context) error {
			ran.Add(1)
			return nil
		})))
	}
	pool.Stop()

	assert.Equal(t, int32(5), ran.Load())
}

func TestPool_SingleWorkerKeepsOrder(t *testing.T) {
	var mu sync.Mutex
	var order []int
	pool := NewPool(1, 10)
	for i := range 5 {
		require.True(t, pool.TrySubmit(JobFunc(func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})))
	}
	pool.Start()
	pool.Stop()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestPool_TrySubmit(t *testing.T) {
	t.Run("full queue rejects", func(t *testing.T) {
		pool := NewPool(1, 1)
		assert.True(t, pool.TrySubmit(JobFunc(noop)))
		assert.False(t, pool.TrySubmit(JobFunc(noop)))
		pool.Start()
		pool.Stop()
	})

	t.Run("stopped pool rejects", func(t *testing.T) {
		pool := NewPool(1, 1)
		pool.Start()
		pool.Stop()
		assert.False(t, pool.TrySubmit(JobFunc(noop)))
		assert.ErrorIs(t, pool.Submit(context.Background(), JobFunc(noop)), ErrPoolClosed)
	})

	t.Run("failing job does not stop the worker", func(t *testing.T) {
		var ran atomic.Int32
		pool := NewPool(1, 4)
		pool.Start()
		assert.True(t, pool.TrySubmit(JobFunc(func(context.Context) error { return errors.New("boom") })))
		assert.True(t, pool.TrySubmit(JobFunc(func(context.Context) error {
			ran.Add(1)
			return nil
		})))
		pool.Stop()
		assert.Equal(t, int32(1), ran.Load())
	})
}

func TestPool_SubmitHonoursContext(t *testing.T) {
	pool := NewPool(1, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := pool.Submit(ctx, JobFunc(noop))
	assert.ErrorIs(t, err, context.DeadlineExceeded, "nobody receives from an unstarted unbuffered pool")
	pool.Stop()
}

func TestPool_StopIsIdempotent(t *testing.T) {
	pool := NewPool(0, -1)
	pool.Start()
	pool.Stop()
	assert.NotPanics(t, pool.Stop)
}
