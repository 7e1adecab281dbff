package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/investment"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// InvestmentSource exposes the active investment, if any
type InvestmentSource interface {
	InvestmentStatus() *investment.Status
}

// InvestmentWorker tells the player when an investment becomes claimable
type InvestmentWorker struct {
	timers
	source    InvestmentSource
	publisher event.Publisher
}

// NewInvestmentWorker creates an InvestmentWorker
func NewInvestmentWorker(source InvestmentSource, publisher event.Publisher, clk clock.Clock) *InvestmentWorker {
	w := &InvestmentWorker{source: source, publisher: publisher}
	w.init(clk)
	return w
}

// Start schedules the maturity notice for an investment restored from the store
func (w *InvestmentWorker) Start() {
	if st := w.source.InvestmentStatus(); st != nil && !st.Claimable {
		w.scheduleMaturity(st.Investment)
	}
}

// Subscribe tracks investments as they are started and claimed
func (w *InvestmentWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.InvestmentStarted, w.handleStarted)
	bus.Subscribe(event.InvestmentClaimed, w.handleClaimed)
}

func (w *InvestmentWorker) handleStarted(_ context.Context, e event.Event) error {
	payload, ok := e.Payload.(domain.InvestmentStartedPayload)
	if !ok {
		return nil
	}
	duration := time.Duration(payload.DurationHours) * time.Hour
	w.scheduleMaturity(domain.Investment{
		Amount:        payload.Amount,
		StartTime:     payload.MaturesAt.Add(-duration),
		DurationHours: payload.DurationHours,
		IsActive:      true,
	})
	return nil
}

func (w *InvestmentWorker) handleClaimed(ctx context.Context, _ event.Event) error {
	if w.stopTimer(investmentTimerKey) {
		logger.FromContext(ctx).Info(LogMsgMaturityCancelled)
	}
	return nil
}

func (w *InvestmentWorker) scheduleMaturity(inv domain.Investment) {
	wait := investment.Remaining(inv, w.clock.Now())
	w.schedule(investmentTimerKey, func() clock.Timer {
		return w.clock.AfterFunc(wait, func() {
			w.run(func(ctx context.Context) { w.matured(ctx, inv) })
		})
	})
	logger.FromContext(context.Background()).Info(LogMsgMaturityScheduled, "amount", inv.Amount, "matures_at", inv.MaturesAt())
}

func (w *InvestmentWorker) matured(ctx context.Context, inv domain.Investment) {
	w.mu.Lock()
	delete(w.pending, investmentTimerKey)
	w.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgInvestmentMatured, "amount", inv.Amount)
	if w.publisher == nil {
		return
	}
	w.publisher.PublishWithRetry(ctx, event.NewInvestmentMaturedEvent(inv))
	w.publisher.PublishWithRetry(ctx, event.NewNotificationEvent(domain.NotificationInfo, fmt.Sprintf(investment.MsgMaturedFormat, inv.Amount)))
}

// Pending reports whether a maturity notice is scheduled
func (w *InvestmentWorker) Pending() bool {
	return w.hasTimer(investmentTimerKey)
}

// Shutdown cancels the pending notice
func (w *InvestmentWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, InvestmentWorkerName)
}
