package event

import "github.com/osse101/PixelPet_Go/internal/domain"

// Type names an event on the bus
type Type string

// Game event types. The names match the domain constants so stream clients see the same strings.
const (
	Notification      Type = domain.EventTypeNotification
	PetSynced         Type = domain.EventTypePetSynced
	PetCreated        Type = domain.EventTypePetCreated
	PetAction         Type = domain.EventTypePetAction
	PetLevelUp        Type = domain.EventTypePetLevelUp
	ActionRejected    Type = domain.EventTypeActionRejected
	MoodRolled        Type = domain.EventTypeMoodRolled
	InvestmentStarted Type = domain.EventTypeInvestmentStarted
	InvestmentClaimed Type = domain.EventTypeInvestmentClaimed
	InvestmentMatured Type = domain.EventTypeInvestmentMatured
	ChallengeResolved Type = domain.EventTypeChallengeResolved
	IdentityChanged   Type = domain.EventTypeIdentityChanged
)

// AllTypes lists every type the game publishes, in a stable order
var AllTypes = []Type{
	Notification,
	PetSynced, PetCreated, PetAction, PetLevelUp, ActionRejected,
	MoodRolled,
	InvestmentStarted, InvestmentClaimed, InvestmentMatured,
	ChallengeResolved,
	IdentityChanged,
}
