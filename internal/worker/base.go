package worker

import (
	"context"
	"sync"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// timers is embedded by the clock-driven workers. Each key holds at most one pending timer,
// and callbacks run as tracked jobs so shutdown can wait for them.
type timers struct {
	clock clock.Clock

	mu      sync.Mutex
	pending map[string]clock.Timer
	closed  bool

	jobs sync.WaitGroup
}

func (w *timers) init(clk clock.Clock) {
	if clk == nil {
		clk = clock.Real{}
	}
	w.clock = clk
	w.pending = make(map[string]clock.Timer)
}

// schedule arms the timer returned by arm under key, stopping the one it replaces.
// After shutdown it does nothing.
func (w *timers) schedule(key string, arm func() clock.Timer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if old := w.pending[key]; old != nil {
		old.Stop()
	}
	w.pending[key] = arm()
}

func (w *timers) stopTimer(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	t := w.pending[key]
	if t == nil {
		return false
	}
	t.Stop()
	delete(w.pending, key)
	return true
}

func (w *timers) hasTimer(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending[key] != nil
}

// run starts job on its own goroutine and reports false once shutdown has begun
func (w *timers) run(job func(ctx context.Context)) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	w.jobs.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.jobs.Done()
		job(context.Background())
	}()
	return true
}

// shutdownInternal cancels pending timers, then waits for running jobs until ctx expires
func (w *timers) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx).With("worker", workerName)
	log.Info(LogMsgWorkerShuttingDown)

	w.mu.Lock()
	w.closed = true
	for key, t := range w.pending {
		t.Stop()
		log.Info(LogMsgWorkerTimerCancelled, "key", key)
	}
	clear(w.pending)
	w.mu.Unlock()

	idle := make(chan struct{})
	go func() {
		w.jobs.Wait()
		close(idle)
	}()
	select {
	case <-idle:
		log.Info(LogMsgWorkerShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWorkerShutdownTimeout)
		return ctx.Err()
	}
}
