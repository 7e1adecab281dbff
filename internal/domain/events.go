package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "pet.synced")
const (
	// EventTypeNotification carries a user-visible notification
	EventTypeNotification = "notification"

	// EventTypePetSynced is published after a sync finishes, successfully or not
	EventTypePetSynced = "pet.synced"

	// EventTypePetCreated is published when a new pet exists on the pet service
	EventTypePetCreated = "pet.created"

	// EventTypePetAction is published after a care action resolves
	EventTypePetAction = "pet.action"

	// EventTypePetLevelUp is published when an action raised the pet's level
	EventTypePetLevelUp = "pet.level_up"

	// EventTypeActionRejected is published when a precondition blocked a command
	EventTypeActionRejected = "pet.action_rejected"

	// EventTypeMoodRolled is published when the daily mood is re-rolled
	EventTypeMoodRolled = "mood.rolled"

	// EventTypeInvestmentStarted is published when coins are escrowed
	EventTypeInvestmentStarted = "investment.started"

	// EventTypeInvestmentClaimed is published when an investment is settled
	EventTypeInvestmentClaimed = "investment.claimed"

	// EventTypeInvestmentMatured is published when an investment becomes claimable
	EventTypeInvestmentMatured = "investment.matured"

	// EventTypeChallengeResolved is published when a play challenge ends
	EventTypeChallengeResolved = "challenge.resolved"

	// EventTypeIdentityChanged is published on connect and disconnect
	EventTypeIdentityChanged = "identity.changed"
)
