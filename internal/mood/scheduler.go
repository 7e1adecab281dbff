// Package mood keeps the daily gameplay modifier, re-rolled every 24 hours.
package mood

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/logger"
	"github.com/osse101/PixelPet_Go/internal/store"
	"github.com/osse101/PixelPet_Go/internal/utils"
)

// Outcome is one of the fixed moods a roll can produce
type Outcome struct {
	MoodType domain.MoodType
	Message  string
}

// Outcomes are the possible rolls, each equally likely
var Outcomes = []Outcome{
	{MoodType: domain.MoodTypeBoost, Message: domain.MoodMessageBoost},
	{MoodType: domain.MoodTypePenalty, Message: domain.MoodMessagePenalty},
	{MoodType: domain.MoodTypeNeutral, Message: domain.MoodMessageNeutral},
}

// Pick maps a uniform sample in [0, 1) onto an outcome
func Pick(r float64) Outcome {
	idx := int(r * float64(len(Outcomes)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Outcomes) {
		idx = len(Outcomes) - 1
	}
	return Outcomes[idx]
}

// Scheduler owns the MoodState. It is safe for concurrent use.
type Scheduler struct {
	mu    sync.Mutex
	state domain.MoodState

	store store.Store
	clock clock.Clock
	rng   utils.RandomSource
	pub   event.Publisher
}

// NewScheduler creates a scheduler holding the default mood until Load is called
func NewScheduler(st store.Store, clk clock.Clock, rng utils.RandomSource, pub event.Publisher) *Scheduler {
	if rng == nil {
		rng = utils.DefaultSource()
	}
	return &Scheduler{
		state: domain.DefaultMoodState(clk.Now()),
		store: st,
		clock: clk,
		rng:   rng,
		pub:   pub,
	}
}

// Load hydrates the mood from the store. A fresh mood is kept verbatim,
// a stale one is replaced by exactly one roll, and a missing one becomes the default stamped now.
func (s *Scheduler) Load(ctx context.Context) domain.MoodState {
	log := logger.FromContext(ctx)

	var persisted domain.MoodState
	err := store.GetJSON(ctx, s.store, domain.StoreKeyMoodState, &persisted)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info(LogMsgMoodMissing)
		return s.setDefault(ctx)
	case err != nil:
		log.Warn(LogMsgMoodLoadFailed, "error", err)
		return s.setDefault(ctx)
	}

	now := s.clock.Now()
	if persisted.Due(now) {
		log.Info(LogMsgMoodStale, "last_mood_check", persisted.LastMoodCheck)
		return s.Roll(ctx)
	}

	s.mu.Lock()
	s.state = persisted
	s.mu.Unlock()
	log.Info(LogMsgMoodLoaded, "mood_type", persisted.MoodType, "next_check", persisted.NextCheck())
	return persisted
}

// Check re-rolls when the 24h window has elapsed. It reports whether a roll happened.
func (s *Scheduler) Check(ctx context.Context) (domain.MoodState, bool) {
	s.mu.Lock()
	due := s.state.Due(s.clock.Now())
	current := s.state
	s.mu.Unlock()

	if !due {
		return current, false
	}
	return s.Roll(ctx), true
}

// Roll unconditionally picks a new mood, persists it and notifies the player
func (s *Scheduler) Roll(ctx context.Context) domain.MoodState {
	outcome := Pick(s.rng.Float64())
	next := domain.MoodState{
		MoodType:      outcome.MoodType,
		Message:       outcome.Message,
		LastMoodCheck: s.clock.Now(),
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgMoodRolled, "mood_type", next.MoodType)
	s.persist(ctx, next)

	if s.pub != nil {
		s.pub.PublishWithRetry(ctx, event.NewMoodRolledEvent(next))
		s.pub.PublishWithRetry(ctx, event.NewNotificationEvent(domain.NotificationInfo, fmt.Sprintf(NotifyMoodRolledFormat, next.Message)))
	}
	return next
}

// Current returns the mood in effect
func (s *Scheduler) Current() domain.MoodState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NextCheck returns when the current mood expires
func (s *Scheduler) NextCheck() time.Time {
	return s.Current().NextCheck()
}

func (s *Scheduler) setDefault(ctx context.Context) domain.MoodState {
	def := domain.DefaultMoodState(s.clock.Now())
	s.mu.Lock()
	s.state = def
	s.mu.Unlock()
	s.persist(ctx, def)
	return def
}

func (s *Scheduler) persist(ctx context.Context, state domain.MoodState) {
	if err := store.SetJSON(ctx, s.store, domain.StoreKeyMoodState, state); err != nil {
		logger.FromContext(ctx).Warn(LogMsgMoodPersistFailed, "error", err)
	}
}
