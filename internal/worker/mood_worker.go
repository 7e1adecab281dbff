package worker

import (
	"context"
	"time"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// MoodChecker is the mood scheduler as seen by the worker
type MoodChecker interface {
	Check(ctx context.Context) (domain.MoodState, bool)
	Current() domain.MoodState
}

// MoodWorker wakes up when the current mood expires and asks for a re-roll
type MoodWorker struct {
	timers
	mood MoodChecker
}

// NewMoodWorker creates a MoodWorker
func NewMoodWorker(mood MoodChecker, clk clock.Clock) *MoodWorker {
	w := &MoodWorker{mood: mood}
	w.init(clk)
	return w
}

// Start arms the timer for the current mood's expiry
func (w *MoodWorker) Start() {
	w.scheduleNext()
}

// Subscribe re-arms the timer whenever a mood is rolled elsewhere
func (w *MoodWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.MoodRolled, w.handleMoodRolled)
}

func (w *MoodWorker) handleMoodRolled(_ context.Context, _ event.Event) error {
	w.scheduleNext()
	return nil
}

func (w *MoodWorker) scheduleNext() {
	next := w.mood.Current().NextCheck()
	wait := next.Sub(w.clock.Now())
	if wait < 0 {
		wait = 0
	}
	w.schedule(moodTimerKey, func() clock.Timer {
		return w.clock.AfterFunc(wait, func() {
			w.run(w.check)
		})
	})
	logger.FromContext(context.Background()).Debug(LogMsgMoodCheckScheduled, "next_check_at", next.Format(time.RFC3339))
}

func (w *MoodWorker) check(ctx context.Context) {
	if mood, rolled := w.mood.Check(ctx); rolled {
		logger.FromContext(ctx).Info(LogMsgMoodRerolled, "mood_type", mood.MoodType)
	}
	w.scheduleNext()
}

// Shutdown cancels the pending check
func (w *MoodWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, MoodWorkerName)
}
