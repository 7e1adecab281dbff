package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/metrics"
	"github.com/osse101/PixelPet_Go/internal/sse"
	"github.com/osse101/PixelPet_Go/internal/worker"
)

// EventHandlerDependencies holds everything that listens on the bus
type EventHandlerDependencies struct {
	EventBus         event.Bus
	Hub              *sse.Hub
	MoodWorker       *worker.MoodWorker
	InvestmentWorker *worker.InvestmentWorker
}

// RegisterEventHandlers subscribes the metrics collector, the SSE bridge and the workers.
// The Discord notifier subscribes itself when the bot starts.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	if deps.MoodWorker != nil {
		deps.MoodWorker.Subscribe(deps.EventBus)
	}
	if deps.InvestmentWorker != nil {
		deps.InvestmentWorker.Subscribe(deps.EventBus)
	}
	slog.Info(LogMsgWorkersSubscribed)
	return nil
}
