package game

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// Sync mirrors the remote pet and coin balance into GameState. It is a no-op while disconnected
// and is rejected with ErrActionInProgress while another command holds the busy gate.
func (s *service) Sync(ctx context.Context) error {
	owner := s.currentIdentity()
	if owner == "" {
		return nil
	}
	if !s.gate.TryAcquire() {
		return fmt.Errorf("%w: %s", domain.ErrActionInProgress, CommandSync)
	}
	s.broadcast()
	defer func() {
		s.gate.Release()
		s.broadcast()
	}()

	_, err := s.refresh(ctx, owner, true)
	return err
}

// refresh fetches pet and coins concurrently and merges them. The caller must hold the gate.
// Either fetch failing leaves GameState untouched.
func (s *service) refresh(ctx context.Context, owner string, announce bool) (bool, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSyncStarted, "owner", owner)

	var (
		pet   *domain.Pet
		coins int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.client.GetPet(gctx, owner)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFetchPet, err)
		}
		pet = p
		return nil
	})
	g.Go(func() error {
		c, err := s.client.GetCoins(gctx, owner)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFetchCoins, err)
		}
		coins = c
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error(LogMsgSyncFailed, "owner", owner, "error", err)
		s.notify(ctx, domain.NotificationError, NotifySyncFailed)
		s.publish(ctx, event.NewPetSyncedEvent(owner, false, false, err))
		return false, err
	}

	now := s.clock.Now()
	s.mu.Lock()
	if s.identity != owner {
		s.mu.Unlock()
		log.Warn(LogMsgSyncDiscarded, "owner", owner)
		return false, nil
	}
	prev := s.state
	var next domain.GameState
	if pet == nil {
		next = domain.DefaultGameState(prev.LastUpdate)
		next.Investment = prev.Clone().Investment
	} else {
		next = mergePet(prev, pet, coins, prev.IsSleeping)
	}
	changed := !prev.SameContent(next)
	if changed {
		next.LastUpdate = now
	} else {
		next.LastUpdate = prev.LastUpdate
	}
	s.state = next
	persisted := next.Clone()
	s.mu.Unlock()

	if changed {
		s.persistGame(ctx, persisted)
	}
	log.Info(LogMsgSyncCompleted, "owner", owner, "changed", changed, "pet_exists", pet != nil)
	s.publish(ctx, event.NewPetSyncedEvent(owner, changed, pet != nil, nil))

	if pet != nil {
		if pet.IsAlive {
			if announce && changed {
				s.notify(ctx, domain.NotificationSuccess, NotifySynced)
			}
			if s.mood != nil {
				s.mood.Check(ctx)
			}
		} else if changed {
			s.notify(ctx, domain.NotificationError, NotifyPetPassedAway)
		}
	}
	return changed, nil
}

// mergePet overwrites the remote-owned fields of prev with pet. While an investment is active
// the escrowed amount stays deducted from the remote balance.
func mergePet(prev domain.GameState, pet *domain.Pet, coins int64, isSleeping bool) domain.GameState {
	next := prev.Clone()
	next.Stats = pet.Stats()
	next.Coins = escrowedCoins(coins, next.Investment)
	next.PetName = pet.Name
	next.Inventory = domain.DecodeAccessories(pet.Accessories)
	next.EquippedItems = domain.DecodeAccessories(pet.Accessories)
	next.HasRealPet = pet.IsAlive
	next.IsSleeping = isSleeping
	next.PetMood = domain.DeriveMood(next.Stats, isSleeping, pet.IsAlive)
	return next
}

// escrowedCoins keeps an active investment's amount deducted from the remote balance, floored
// at zero. Sync deliberately does not copy remote coins verbatim; see "Escrow" in DESIGN.md §5.
func escrowedCoins(remote int64, inv *domain.Investment) int64 {
	if inv == nil || !inv.IsActive {
		return remote
	}
	if remote < inv.Amount {
		return 0
	}
	return remote - inv.Amount
}
