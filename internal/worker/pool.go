package worker

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PixelPet_Go/internal/logger"
)

// ErrPoolClosed is returned by Submit once Stop has been called
var ErrPoolClosed = errors.New("worker pool closed")

// Job is one unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool feeds a bounded queue to a fixed number of goroutines. With one worker, jobs run in submission order.
type Pool struct {
	workers int
	queue   chan Job
	group   errgroup.Group

	mu     sync.RWMutex
	closed bool
}

func NewPool(workers, queueSize int) *Pool {
	return &Pool{workers: max(workers, 1), queue: make(chan Job, max(queueSize, 0))}
}

// Start launches the workers. Jobs submitted earlier wait in the queue.
func (p *Pool) Start() {
	for range p.workers {
		p.group.Go(p.drain)
	}
}

func (p *Pool) drain() error {
	ctx := context.Background()
	for job := range p.queue {
		if err := job.Process(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
		}
	}
	return nil
}

// Submit queues job, waiting for room until ctx is done
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.queue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues job only if there is room right now
func (p *Pool) TrySubmit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.queue <- job:
		return true
	default:
		logger.FromContext(context.Background()).Warn(LogMsgWorkerQueueFull)
		return false
	}
}

// Stop refuses new jobs, lets the workers finish everything already queued and waits for them
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	_ = p.group.Wait()
}
