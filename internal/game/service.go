// Package game reconciles the local pet state with the remote pet service and runs the mini-games.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/concurrency"
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/investment"
	"github.com/osse101/PixelPet_Go/internal/logger"
	"github.com/osse101/PixelPet_Go/internal/petservice"
	"github.com/osse101/PixelPet_Go/internal/qte"
	"github.com/osse101/PixelPet_Go/internal/store"
	"github.com/osse101/PixelPet_Go/internal/utils"
)

// Service is the single owner of GameState, MoodState and Investment
type Service interface {
	Hydrate(ctx context.Context) error
	Connect(ctx context.Context, identity string) error
	Disconnect(ctx context.Context) error
	Sync(ctx context.Context) error
	PerformAction(ctx context.Context, kind domain.ActionKind) (domain.GameState, error)
	CreatePet(ctx context.Context, name string) (domain.GameState, error)
	MintGlasses(ctx context.Context) (domain.GameState, error)
	StartInvestment(ctx context.Context, amount int64, durationHours int) (domain.Investment, error)
	ClaimInvestment(ctx context.Context) (*ClaimResult, error)
	InvestmentStatus() *investment.Status
	StartPlayChallenge(ctx context.Context) error
	HitPlayChallenge(ctx context.Context) (qte.Resolution, error)
	CancelPlayChallenge(ctx context.Context) bool
	Mood() domain.MoodState
	Snapshot() Snapshot
	Subscribe(buffer int) (<-chan Snapshot, func())
	Shutdown(ctx context.Context) error
}

// MoodScheduler is the daily mood the reconciler triggers after syncs and pet creation
type MoodScheduler interface {
	Load(ctx context.Context) domain.MoodState
	Check(ctx context.Context) (domain.MoodState, bool)
	Roll(ctx context.Context) domain.MoodState
	Current() domain.MoodState
}

// Deps are the collaborators of the service
type Deps struct {
	Client    petservice.Client
	Store     store.Store
	Mood      MoodScheduler
	Publisher event.Publisher
	Clock     clock.Clock
	Rand      utils.RandomSource
}

// Config tunes game rules
type Config struct {
	AllowEarlyClaim bool
	Challenge       qte.Config
}

// DefaultConfig allows early claims and uses the standard challenge timing
func DefaultConfig() Config {
	return Config{
		AllowEarlyClaim: true,
		Challenge:       qte.DefaultConfig(),
	}
}

type service struct {
	client petservice.Client
	store  store.Store
	mood   MoodScheduler
	pub    event.Publisher
	clock  clock.Clock
	rng    utils.RandomSource
	cfg    Config
	gate   *concurrency.Gate

	mu        sync.RWMutex
	state     domain.GameState
	identity  string
	challenge *qte.Challenge

	subMu       sync.Mutex
	subscribers map[int]chan Snapshot
	nextSubID   int
	closed      bool
}

// NewService creates the reconciler with default state. Call Hydrate before use.
func NewService(deps Deps, cfg Config) Service {
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	rng := deps.Rand
	if rng == nil {
		rng = utils.DefaultSource()
	}
	return &service{
		client:      deps.Client,
		store:       deps.Store,
		mood:        deps.Mood,
		pub:         deps.Publisher,
		clock:       clk,
		rng:         rng,
		cfg:         cfg,
		gate:        concurrency.NewGate(),
		state:       domain.DefaultGameState(clk.Now()),
		subscribers: make(map[int]chan Snapshot),
	}
}

// Hydrate restores GameState, Investment and MoodState from the store
func (s *service) Hydrate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	state := domain.DefaultGameState(s.clock.Now())
	var persisted domain.GameState
	err := store.GetJSON(ctx, s.store, domain.StoreKeyGameState, &persisted)
	switch {
	case err == nil:
		state = persisted.Clone()
	case !errors.Is(err, store.ErrNotFound):
		log.Warn(LogMsgHydrateFailed, "error", err)
	}
	state.Investment = s.loadInvestment(ctx)
	if state.HasRealPet {
		state.PetMood = domain.DeriveMood(state.Stats, state.IsSleeping, true)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	if s.mood != nil {
		s.mood.Load(ctx)
	}

	log.Info(LogMsgHydrated, "has_pet", state.HasRealPet, "investment_active", state.Investment != nil)
	s.broadcast()
	return nil
}

// loadInvestment reads the standalone investment key, which wins over any copy embedded in GameState
func (s *service) loadInvestment(ctx context.Context) *domain.Investment {
	var inv domain.Investment
	err := store.GetJSON(ctx, s.store, domain.StoreKeyInvestment, &inv)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.FromContext(ctx).Warn(LogMsgInvestmentLoadFailed, "error", err)
		}
		return nil
	}
	if !inv.IsActive {
		return nil
	}
	return &inv
}

// Connect binds an identity and syncs it. The identity stays connected even if the sync fails.
func (s *service) Connect(ctx context.Context, identity string) error {
	if identity == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextEmptyIdentity)
	}

	s.mu.Lock()
	previous := s.identity
	changed := previous != identity
	reset := changed && previous != ""
	s.identity = identity
	var challenge *qte.Challenge
	if reset {
		// Switching identities drops everything mirrored for the previous one
		challenge = s.challenge
		s.challenge = nil
		s.state = domain.DefaultGameState(s.clock.Now())
	}
	if changed {
		if s.state.Investment == nil {
			s.state.Investment = s.loadInvestment(ctx)
		}
		if inv := s.state.Investment; inv != nil && !inv.OwnedBy(identity) {
			s.state.Investment = nil
		}
	}
	state := s.state.Clone()
	s.mu.Unlock()

	if challenge != nil {
		challenge.Cancel()
	}
	if reset {
		s.persistGame(ctx, state)
		logger.FromContext(ctx).Info(LogMsgDisconnected, "identity", previous)
		s.publish(ctx, event.NewIdentityChangedEvent(previous, false))
	}
	if changed {
		logger.FromContext(ctx).Info(LogMsgConnected, "identity", identity)
		s.publish(ctx, event.NewIdentityChangedEvent(identity, true))
	}
	s.broadcast()
	return s.Sync(ctx)
}

// Disconnect unbinds the identity and resets GameState to defaults
func (s *service) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	previous := s.identity
	s.identity = ""
	challenge := s.challenge
	s.challenge = nil
	s.state = domain.DefaultGameState(s.clock.Now())
	state := s.state.Clone()
	s.mu.Unlock()

	if challenge != nil {
		challenge.Cancel()
	}
	s.persistGame(ctx, state)

	if previous != "" {
		logger.FromContext(ctx).Info(LogMsgDisconnected, "identity", previous)
		s.publish(ctx, event.NewIdentityChangedEvent(previous, false))
	}
	s.broadcast()
	return nil
}

// Mood returns the daily mood in effect
func (s *service) Mood() domain.MoodState {
	if s.mood == nil {
		return domain.DefaultMoodState(s.clock.Now())
	}
	return s.mood.Current()
}

// Shutdown cancels any running challenge, flushes state and closes all subscriptions
func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgShutdown)

	s.mu.Lock()
	challenge := s.challenge
	s.challenge = nil
	state := s.state.Clone()
	s.mu.Unlock()

	if challenge != nil {
		challenge.Cancel()
	}
	s.persistGame(ctx, state)

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
	s.closed = true
	return nil
}

func (s *service) currentIdentity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.pub != nil {
		s.pub.PublishWithRetry(ctx, evt)
	}
}

func (s *service) notify(ctx context.Context, level domain.NotificationLevel, msg string) {
	s.publish(ctx, event.NewNotificationEvent(level, msg))
}

// persistGame writes GameState. Failures are logged and otherwise ignored.
func (s *service) persistGame(ctx context.Context, state domain.GameState) {
	if err := store.SetJSON(ctx, s.store, domain.StoreKeyGameState, state); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPersistFailed, "key", domain.StoreKeyGameState, "error", err)
	}
}

// persistInvestment writes or clears the investment key. It always runs before persistGame
// so that a crash in between leaves the authoritative key correct.
func (s *service) persistInvestment(ctx context.Context, inv *domain.Investment) {
	var err error
	if inv == nil {
		err = s.store.Remove(ctx, domain.StoreKeyInvestment)
		if errors.Is(err, store.ErrNotFound) {
			err = nil
		}
	} else {
		err = store.SetJSON(ctx, s.store, domain.StoreKeyInvestment, inv)
	}
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPersistFailed, "key", domain.StoreKeyInvestment, "error", err)
	}
}
