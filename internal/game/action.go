package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/logger"
	"github.com/osse101/PixelPet_Go/internal/petservice"
)

var titleCaser = cases.Title(language.English)

// checkPreconditions validates a pet command without touching the gate.
// The order matches the messages shown to the player.
func (s *service) checkPreconditions() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == "" {
		return "", domain.ErrNotConnected
	}
	if !s.state.HasRealPet {
		return "", domain.ErrNoPet
	}
	if s.gate.Busy() {
		return "", domain.ErrActionInProgress
	}
	if s.state.Stats.Incapacitated() {
		return "", domain.ErrPetUnwell
	}
	return s.identity, nil
}

// begin runs the precondition check and takes the busy gate. On success the caller must call end.
func (s *service) begin(ctx context.Context, command string) (string, error) {
	owner, err := s.checkPreconditions()
	if err == nil && !s.gate.TryAcquire() {
		err = domain.ErrActionInProgress
	}
	if err != nil {
		s.reject(ctx, command, err)
		return "", err
	}
	s.broadcast()
	return owner, nil
}

func (s *service) end() {
	s.gate.Release()
	s.broadcast()
}

// reject reports a precondition failure to the player. No state changes.
func (s *service) reject(ctx context.Context, command string, err error) {
	logger.FromContext(ctx).Info(LogMsgActionRejected, "command", command, "reason", err)
	s.publish(ctx, event.NewActionRejectedEvent(command, err))
	s.notify(ctx, domain.NotificationError, rejectionMessage(err))
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		return NotifyConnectFirst
	case errors.Is(err, domain.ErrNoPet):
		return NotifyCreatePetFirst
	case errors.Is(err, domain.ErrInsufficientCoins):
		return NotifyNotEnoughCoins
	case errors.Is(err, domain.ErrInvestmentActive):
		return NotifyInvestmentRunning
	default:
		return NotifyBusyOrUnwell
	}
}

// PerformAction sends a care action to the pet service and merges the returned pet.
// Play is only reachable through the play challenge.
func (s *service) PerformAction(ctx context.Context, kind domain.ActionKind) (domain.GameState, error) {
	if _, err := domain.ParseActionKind(string(kind)); err != nil {
		return s.Snapshot().Game, err
	}
	if kind == domain.ActionPlay {
		return s.Snapshot().Game, fmt.Errorf("%w: %s", domain.ErrInvalidAction, ErrContextPlayNeedsChallenge)
	}
	return s.performAction(ctx, kind)
}

func (s *service) performAction(ctx context.Context, kind domain.ActionKind) (domain.GameState, error) {
	owner, err := s.begin(ctx, string(kind))
	if err != nil {
		return s.Snapshot().Game, err
	}
	defer s.end()

	log := logger.FromContext(ctx)
	log.Info(LogMsgActionStarted, "owner", owner, "action", kind)

	return s.mutate(ctx, owner, string(kind), kind == domain.ActionSleep, func(ctx context.Context) (*domain.Pet, error) {
		return petservice.Perform(ctx, s.client, owner, kind)
	}, ActionSuccessMessages[kind])
}

// MintGlasses buys the cool glasses accessory
func (s *service) MintGlasses(ctx context.Context) (domain.GameState, error) {
	owner, err := s.begin(ctx, CommandMintGlasses)
	if err != nil {
		return s.Snapshot().Game, err
	}
	defer s.end()

	return s.mutate(ctx, owner, CommandMintGlasses, false, func(ctx context.Context) (*domain.Pet, error) {
		return s.client.MintGlasses(ctx, owner)
	}, NotifyGlassesMinted)
}

// mutate runs a remote mutation, re-reads the coin balance and merges both.
// Any failure leaves GameState untouched. The caller holds the gate.
func (s *service) mutate(ctx context.Context, owner, name string, sleeping bool, call func(context.Context) (*domain.Pet, error), successMsg string) (domain.GameState, error) {
	log := logger.FromContext(ctx)
	kind := domain.ActionKind(name)

	pet, err := call(ctx)
	var coins int64
	if err == nil {
		coins, err = s.client.GetCoins(ctx, owner)
	}
	if err != nil {
		log.Error(LogMsgActionFailed, "owner", owner, "action", name, "error", err)
		s.notify(ctx, domain.NotificationError, fmt.Sprintf(NotifyActionFailed, displayName(name)))
		s.publish(ctx, event.NewPetActionEvent(owner, kind, domain.PetStats{}, 0, err))
		return s.Snapshot().Game, fmt.Errorf("%s: %s: %w", ErrContextAction, name, err)
	}

	s.mu.Lock()
	if s.identity != owner {
		s.mu.Unlock()
		log.Warn(LogMsgSyncDiscarded, "owner", owner)
		return s.Snapshot().Game, nil
	}
	prevLevel := s.state.Stats.Level
	next := mergePet(s.state, pet, coins, sleeping)
	next.LastUpdate = s.clock.Now()
	s.state = next
	result := next.Clone()
	s.mu.Unlock()

	s.persistGame(ctx, result)
	log.Info(LogMsgActionCompleted, "owner", owner, "action", name, "level", result.Stats.Level, "coins", result.Coins)
	s.publish(ctx, event.NewPetActionEvent(owner, kind, result.Stats, result.Coins, nil))

	if successMsg != "" {
		s.notify(ctx, domain.NotificationSuccess, successMsg)
	}
	if result.Stats.Level > prevLevel {
		log.Info(LogMsgLevelUp, "owner", owner, "old_level", prevLevel, "new_level", result.Stats.Level)
		s.publish(ctx, event.NewPetLevelUpEvent(owner, prevLevel, result.Stats.Level))
		s.notify(ctx, domain.NotificationInfo, fmt.Sprintf(NotifyLevelUpFormat, result.Stats.Level))
	}
	return result, nil
}

// CreatePet hatches a new pet for the connected identity and rolls a fresh mood
func (s *service) CreatePet(ctx context.Context, name string) (domain.GameState, error) {
	log := logger.FromContext(ctx)
	name = strings.TrimSpace(name)

	owner := s.currentIdentity()
	var err error
	switch {
	case owner == "":
		err = domain.ErrNotConnected
	case !s.gate.TryAcquire():
		err = domain.ErrActionInProgress
	}
	if err != nil {
		s.reject(ctx, CommandCreatePet, err)
		return s.Snapshot().Game, err
	}
	s.broadcast()
	defer s.end()

	if name == "" {
		return s.Snapshot().Game, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextEmptyName)
	}

	pet, err := s.client.CreatePet(ctx, owner, name)
	var coins int64
	if err == nil {
		coins, err = s.client.GetCoins(ctx, owner)
	}
	if err != nil {
		log.Error(LogMsgPetCreateFailed, "owner", owner, "error", err)
		s.notify(ctx, domain.NotificationError, NotifyPetCreateFailed)
		return s.Snapshot().Game, fmt.Errorf("%s: %w", ErrContextCreatePet, err)
	}

	s.mu.Lock()
	if s.identity != owner {
		s.mu.Unlock()
		return s.Snapshot().Game, nil
	}
	next := mergePet(s.state, pet, coins, false)
	next.HasRealPet = true
	next.PetMood = domain.DeriveMood(next.Stats, false, true)
	next.LastUpdate = s.clock.Now()
	s.state = next
	result := next.Clone()
	s.mu.Unlock()

	s.persistGame(ctx, result)
	log.Info(LogMsgPetCreated, "owner", owner, "name", pet.Name, "species", pet.SpeciesID)
	s.publish(ctx, event.NewPetCreatedEvent(owner, pet.Name, pet.SpeciesID))
	s.notify(ctx, domain.NotificationSuccess, fmt.Sprintf(NotifyPetCreatedFormat, pet.Name))

	if s.mood != nil {
		s.mood.Roll(ctx)
	}
	return result, nil
}

func displayName(command string) string {
	return titleCaser.String(strings.ReplaceAll(command, "_", " "))
}
