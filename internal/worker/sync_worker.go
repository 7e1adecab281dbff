package worker

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// Syncer refreshes local state from the pet service
type Syncer interface {
	Sync(ctx context.Context) error
}

// SyncWorker re-syncs the game state on a fixed interval
type SyncWorker struct {
	timers
	syncer   Syncer
	interval time.Duration
}

// NewSyncWorker creates a SyncWorker. A nil clock uses the system clock.
func NewSyncWorker(syncer Syncer, interval time.Duration, clk clock.Clock) *SyncWorker {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	w := &SyncWorker{syncer: syncer, interval: interval}
	w.init(clk)
	return w
}

// Start schedules the first periodic sync
func (w *SyncWorker) Start() {
	w.scheduleNext()
}

func (w *SyncWorker) scheduleNext() {
	w.schedule(syncTimerKey, func() clock.Timer {
		return w.clock.AfterFunc(w.interval, func() {
			w.run(func(ctx context.Context) {
				_ = w.SyncOnce(ctx)
				w.scheduleNext()
			})
		})
	})
	logger.FromContext(context.Background()).Debug(LogMsgSyncScheduled, "interval", w.interval)
}

// SyncOnce runs one sync. A busy reconciler is not an error; the next tick retries.
func (w *SyncWorker) SyncOnce(ctx context.Context) error {
	err := w.syncer.Sync(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrActionInProgress):
		logger.FromContext(ctx).Debug(LogMsgSyncSkipped)
		return nil
	default:
		logger.FromContext(ctx).Warn(LogMsgSyncFailed, "error", err)
		return err
	}
}

// Shutdown cancels the pending tick and waits for an in-flight sync
func (w *SyncWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, SyncWorkerName)
}
