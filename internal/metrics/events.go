package metrics

import (
	"context"
	"math"
	"strconv"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all game events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case domain.PetActionPayload:
		PetActions.WithLabelValues(string(p.Action), result(p.Success)).Inc()
		if p.Success {
			Coins.Set(float64(p.Coins))
		}
	case domain.PetSyncedPayload:
		PetSyncs.WithLabelValues(result(p.Success), strconv.FormatBool(p.Changed)).Inc()
	case domain.PetLevelUpPayload:
		PetLevelUps.Inc()
	case domain.PetCreatedPayload:
		PetsCreated.Inc()
	case domain.ActionRejectedPayload:
		Rejections.WithLabelValues(p.Command).Inc()
	case domain.MoodRolledPayload:
		MoodRolls.WithLabelValues(string(p.MoodType)).Inc()
	case domain.InvestmentStartedPayload:
		InvestmentsStarted.WithLabelValues(strconv.Itoa(p.DurationHours)).Inc()
	case domain.InvestmentClaimedPayload:
		InvestmentClaims.WithLabelValues(p.Outcome, strconv.FormatBool(p.Settled)).Inc()
		if p.Settled {
			InvestmentNetCoins.Add(float64(p.Net))
		}
	case domain.ChallengeResolvedPayload:
		Challenges.WithLabelValues(p.Result).Inc()
		if p.ElapsedMS > 0 {
			ChallengeReaction.Observe(math.Abs(float64(p.ElapsedMS-p.TargetMS)) / 1000)
		}
	case domain.Notification, domain.InvestmentMaturedPayload, domain.IdentityChangedPayload:
	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
