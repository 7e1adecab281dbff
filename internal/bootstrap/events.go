package bootstrap

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/osse101/PixelPet_Go/internal/config"
	"github.com/osse101/PixelPet_Go/internal/event"
)

// EventSystem pairs the in-process bus with the retrying publisher the game publishes through
type EventSystem struct {
	Bus       *event.MemoryBus
	Publisher *event.ResilientPublisher
}

type retryPolicy struct {
	attempts   int
	baseDelay  time.Duration
	deadLetter string
}

// retryPolicyFrom fills unset or negative values with the package defaults
func retryPolicyFrom(cfg *config.Config) retryPolicy {
	return retryPolicy{
		attempts:   cmp.Or(max(cfg.EventMaxRetries, 0), EventDefaultMaxRetries),
		baseDelay:  cmp.Or(max(cfg.EventRetryDelay, 0), EventDefaultRetryDelay),
		deadLetter: cmp.Or(cfg.EventDeadLetterPath, EventDefaultDeadLetterPath),
	}
}

func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	policy := retryPolicyFrom(cfg)

	if err := os.MkdirAll(filepath.Dir(policy.deadLetter), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	sys := &EventSystem{Bus: event.NewMemoryBus()}
	publisher, err := event.NewResilientPublisher(sys.Bus, policy.attempts, policy.baseDelay, policy.deadLetter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}
	sys.Publisher = publisher

	slog.Info(LogMsgEventSystemInitialized,
		slog.Int("max_retries", policy.attempts),
		slog.Duration("retry_delay", policy.baseDelay),
		slog.String("deadletter_path", policy.deadLetter))
	return sys, nil
}

// Shutdown flushes pending retries to the dead-letter file
func (e *EventSystem) Shutdown(ctx context.Context) error {
	return e.Publisher.Shutdown(ctx)
}
