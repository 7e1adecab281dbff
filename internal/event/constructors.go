package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PixelPet_Go/internal/domain"
)

// newEvent stamps the schema version. meta is a flat list of key/value pairs.
func newEvent(t Type, payload any, meta ...string) Event {
	evt := Event{Version: EventSchemaVersion, Type: t, Payload: payload}
	if len(meta) > 1 {
		evt.Metadata = make(map[string]string, len(meta)/2)
		for i := 0; i+1 < len(meta); i += 2 {
			evt.Metadata[meta[i]] = meta[i+1]
		}
	}
	return evt
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func NewNotificationEvent(level domain.NotificationLevel, message string) Event {
	return newEvent(Notification, domain.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}, "level", string(level))
}

// NewPetSyncedEvent reports a sync attempt; a nil err marks success
func NewPetSyncedEvent(owner string, changed, petExists bool, err error) Event {
	return newEvent(PetSynced, domain.PetSyncedPayload{
		Owner:     owner,
		Success:   err == nil,
		Changed:   changed,
		PetExists: petExists,
		Error:     errString(err),
		Timestamp: time.Now().Unix(),
	})
}

func NewPetCreatedEvent(owner, name string, speciesID int) Event {
	return newEvent(PetCreated, domain.PetCreatedPayload{
		Owner:     owner,
		Name:      name,
		SpeciesID: speciesID,
		Timestamp: time.Now().Unix(),
	})
}

// NewPetActionEvent reports a care action; a nil err marks success
func NewPetActionEvent(owner string, action domain.ActionKind, stats domain.PetStats, coins int64, err error) Event {
	return newEvent(PetAction, domain.PetActionPayload{
		Owner:     owner,
		Action:    action,
		Success:   err == nil,
		Stats:     stats,
		Coins:     coins,
		Error:     errString(err),
		Timestamp: time.Now().Unix(),
	}, "action", string(action))
}

func NewPetLevelUpEvent(owner string, oldLevel, newLevel int) Event {
	return newEvent(PetLevelUp, domain.PetLevelUpPayload{
		Owner:     owner,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		Timestamp: time.Now().Unix(),
	})
}

func NewActionRejectedEvent(command string, reason error) Event {
	return newEvent(ActionRejected, domain.ActionRejectedPayload{
		Command:   command,
		Reason:    errString(reason),
		Timestamp: time.Now().Unix(),
	}, "command", command)
}

func NewMoodRolledEvent(mood domain.MoodState) Event {
	return newEvent(MoodRolled, domain.MoodRolledPayload{
		MoodType:      mood.MoodType,
		Message:       mood.Message,
		LastMoodCheck: mood.LastMoodCheck,
	})
}

func NewInvestmentStartedEvent(owner string, inv domain.Investment) Event {
	return newEvent(InvestmentStarted, domain.InvestmentStartedPayload{
		Owner:         owner,
		Amount:        inv.Amount,
		DurationHours: inv.DurationHours,
		MaturesAt:     inv.MaturesAt(),
	})
}

// NewInvestmentClaimedEvent records the payout; settled is false when the pet service rejected the delta
func NewInvestmentClaimedEvent(owner, outcome string, amount, final, net int64, settled bool) Event {
	return newEvent(InvestmentClaimed, domain.InvestmentClaimedPayload{
		Owner:     owner,
		Outcome:   outcome,
		Amount:    amount,
		Final:     final,
		Net:       net,
		Settled:   settled,
		Timestamp: time.Now().Unix(),
	}, "outcome", outcome)
}

func NewInvestmentMaturedEvent(inv domain.Investment) Event {
	return newEvent(InvestmentMatured, domain.InvestmentMaturedPayload{
		Amount:    inv.Amount,
		MaturesAt: inv.MaturesAt(),
	})
}

func NewChallengeResolvedEvent(result string, elapsed, target time.Duration) Event {
	return newEvent(ChallengeResolved, domain.ChallengeResolvedPayload{
		Result:    result,
		ElapsedMS: elapsed.Milliseconds(),
		TargetMS:  target.Milliseconds(),
		Timestamp: time.Now().Unix(),
	}, "result", result)
}

func NewIdentityChangedEvent(identity string, connected bool) Event {
	return newEvent(IdentityChanged, domain.IdentityChangedPayload{
		Identity:  identity,
		Connected: connected,
		Timestamp: time.Now().Unix(),
	})
}
