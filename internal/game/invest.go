package game

import (
	"context"
	"fmt"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/investment"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// ClaimResult reports how a claim was resolved and whether the pet service accepted the delta
type ClaimResult struct {
	Amount  int64              `json:"amount"`
	Outcome investment.Outcome `json:"outcome"`
	Settled bool               `json:"settled"`
	Message string             `json:"message"`
}

// StartInvestment escrows amount coins locally for durationHours
func (s *service) StartInvestment(ctx context.Context, amount int64, durationHours int) (domain.Investment, error) {
	owner, err := s.begin(ctx, CommandStartInvestment)
	if err != nil {
		return domain.Investment{}, err
	}
	defer s.end()

	inv, err := investment.New(amount, durationHours, s.clock.Now())
	if err != nil {
		return domain.Investment{}, err
	}
	inv.Owner = owner

	s.mu.Lock()
	switch {
	case s.state.Investment != nil:
		err = domain.ErrInvestmentActive
	case amount > s.state.Coins:
		err = fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientCoins, s.state.Coins, amount)
	}
	if err != nil {
		s.mu.Unlock()
		s.reject(ctx, CommandStartInvestment, err)
		return domain.Investment{}, err
	}
	s.state.Coins -= amount
	s.state.Investment = &inv
	s.state.LastUpdate = s.clock.Now()
	state := s.state.Clone()
	s.mu.Unlock()

	s.persistInvestment(ctx, &inv)
	s.persistGame(ctx, state)

	logger.FromContext(ctx).Info(LogMsgInvestmentStarted, "owner", owner, "amount", amount, "duration_hours", durationHours)
	s.publish(ctx, event.NewInvestmentStartedEvent(owner, inv))
	s.notify(ctx, domain.NotificationSuccess, fmt.Sprintf(investment.MsgStartedFormat, amount, durationHours))
	return inv, nil
}

// ClaimInvestment resolves the payout and sends the net delta to the pet service.
// The investment is cleared and the balance resynced whether or not the delta was accepted.
func (s *service) ClaimInvestment(ctx context.Context) (*ClaimResult, error) {
	owner, err := s.begin(ctx, CommandClaimInvestment)
	if err != nil {
		return nil, err
	}
	defer s.end()
	log := logger.FromContext(ctx)

	s.mu.RLock()
	var inv domain.Investment
	active := s.state.Investment != nil
	if active {
		inv = *s.state.Investment
	}
	s.mu.RUnlock()

	if !active {
		s.reject(ctx, CommandClaimInvestment, domain.ErrNoActiveInvestment)
		return nil, domain.ErrNoActiveInvestment
	}
	if !s.cfg.AllowEarlyClaim && !investment.Claimable(inv, s.clock.Now()) {
		err := fmt.Errorf("%w: %s left", domain.ErrInvestmentNotMatured, investment.FormatRemaining(investment.Remaining(inv, s.clock.Now())))
		s.reject(ctx, CommandClaimInvestment, err)
		return nil, err
	}

	outcome := investment.Resolve(inv.Amount, s.rng)
	result := &ClaimResult{Amount: inv.Amount, Outcome: outcome}

	_, settleErr := s.client.UpdateCoins(ctx, owner, outcome.Net)
	result.Settled = settleErr == nil

	s.mu.Lock()
	s.state.Investment = nil
	state := s.state.Clone()
	s.mu.Unlock()
	s.persistInvestment(ctx, nil)
	s.persistGame(ctx, state)

	s.publish(ctx, event.NewInvestmentClaimedEvent(owner, outcome.Kind, inv.Amount, outcome.Final, outcome.Net, result.Settled))

	if settleErr != nil {
		log.Error(LogMsgSettlementFailed, "owner", owner, "net", outcome.Net, "error", settleErr)
		result.Message = NotifyClaimFailed
		s.notify(ctx, domain.NotificationError, NotifyClaimFailed)
	} else {
		result.Message = outcome.Message(inv.Amount)
		log.Info(LogMsgInvestmentClaimed, "owner", owner, "outcome", outcome.Kind, "net", outcome.Net)
		s.notify(ctx, domain.NotificationSuccess, result.Message)
	}

	// The resync reconciles the authoritative balance; its own failure is reported by refresh.
	_, _ = s.refresh(ctx, owner, false)

	if settleErr != nil {
		return result, fmt.Errorf("%w: %s: %w", domain.ErrSettlementFailed, ErrContextSettle, settleErr)
	}
	return result, nil
}

// InvestmentStatus returns the active investment's progress, or nil when none is active
func (s *service) InvestmentStatus() *investment.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Investment == nil {
		return nil
	}
	status := investment.StatusAt(*s.state.Investment, s.clock.Now())
	return &status
}
