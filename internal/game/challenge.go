package game

import (
	"context"
	"fmt"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/logger"
	"github.com/osse101/PixelPet_Go/internal/qte"
)

// StartPlayChallenge arms a new play challenge. Only one challenge can be armed or running at a time.
func (s *service) StartPlayChallenge(ctx context.Context) error {
	if _, err := s.checkPreconditions(); err != nil {
		s.reject(ctx, CommandStartChallenge, err)
		return err
	}

	s.mu.Lock()
	if s.challenge != nil {
		st := s.challenge.State()
		if st.Armed || st.Phase == qte.PhaseRunning {
			s.mu.Unlock()
			return fmt.Errorf("%w: phase %s", domain.ErrChallengeActive, st.Phase)
		}
	}
	// Timeouts fire on a timer goroutine long after the request that armed the challenge
	bg := context.WithoutCancel(ctx)
	var c *qte.Challenge
	c = qte.NewChallenge(s.cfg.Challenge, s.clock, s.rng, s.playCallback, func(res qte.Resolution) {
		s.onChallengeTimeout(bg, c, res)
	})
	s.challenge = c
	s.mu.Unlock()

	if err := c.Activate(); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgChallengeStarted)
	s.broadcast()
	return nil
}

func (s *service) playCallback(ctx context.Context) error {
	_, err := s.performAction(ctx, domain.ActionPlay)
	return err
}

func (s *service) onChallengeTimeout(ctx context.Context, c *qte.Challenge, res qte.Resolution) {
	s.mu.Lock()
	current := s.challenge == c
	s.mu.Unlock()
	if !current {
		return
	}
	s.announceChallenge(ctx, res)
	s.broadcast()
}

// HitPlayChallenge submits the player's input. A hit inside the window performs the play action;
// its error, if any, is returned with the resolution.
func (s *service) HitPlayChallenge(ctx context.Context) (qte.Resolution, error) {
	s.mu.RLock()
	c := s.challenge
	s.mu.RUnlock()
	if c == nil {
		return qte.Resolution{}, domain.ErrChallengeNotRunning
	}

	res, playErr := c.Hit(ctx)
	if res.Result == "" {
		return res, playErr
	}
	s.announceChallenge(ctx, res)
	s.broadcast()
	return res, playErr
}

// CancelPlayChallenge dismisses the challenge without any remote call
func (s *service) CancelPlayChallenge(ctx context.Context) bool {
	s.mu.Lock()
	c := s.challenge
	s.challenge = nil
	s.mu.Unlock()
	if c == nil {
		return false
	}
	interrupted := c.Cancel()
	s.broadcast()
	return interrupted
}

func (s *service) announceChallenge(ctx context.Context, res qte.Resolution) {
	logger.FromContext(ctx).Info(LogMsgChallengeResolved, "result", res.Result, "elapsed", res.Elapsed, "target", res.Target)
	s.publish(ctx, event.NewChallengeResolvedEvent(string(res.Result), res.Elapsed, res.Target))
	level := domain.NotificationError
	if res.Result == qte.ResultSuccess {
		level = domain.NotificationSuccess
	}
	s.notify(ctx, level, res.Result.Message())
}
