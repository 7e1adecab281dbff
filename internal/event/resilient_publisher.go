package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type retryEntry struct {
	event    Event
	attempt  int
	lastErr  error
	enqueued time.Time
}

// ResilientPublisher wraps a Bus with asynchronous retries and a dead-letter file.
// Callers never see publish errors; events that exhaust their retries are dead-lettered.
type ResilientPublisher struct {
	bus          Bus
	retryQueue   chan retryEntry
	maxRetries   int
	retryDelay   time.Duration
	deadLetter   *DeadLetterWriter
	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry publishes synchronously once and queues a retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	slog.Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	p.enqueue(retryEntry{event: evt, attempt: 1, lastErr: err, enqueued: time.Now()})
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// Shutdown stops the retry worker, giving queued events one final attempt
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() {
		close(p.shutdown)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if p.deadLetter != nil {
			return p.deadLetter.Close()
		}
		return nil
	case <-ctx.Done():
		slog.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		slog.Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case entry := <-p.retryQueue:
			p.process(entry)
		}
	}
}

func (p *ResilientPublisher) process(entry retryEntry) {
	timer := time.NewTimer(CalculateRetryDelay(p.retryDelay, entry.attempt))
	select {
	case <-timer.C:
	case <-p.shutdown:
		timer.Stop()
	}

	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		slog.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastErr = err
	if entry.attempt >= p.maxRetries {
		slog.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt)
		p.writeDeadLetter(entry)
		return
	}

	slog.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	entry.attempt++
	p.enqueue(entry)
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			drained++
			if err := p.bus.Publish(context.Background(), entry.event); err != nil {
				entry.lastErr = err
				slog.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
				p.writeDeadLetter(entry)
			}
		default:
			if drained > 0 {
				slog.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		slog.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}
var _ Publisher = (*ResilientPublisher)(nil)
