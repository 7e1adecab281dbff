package game

import (
	"time"

	"github.com/osse101/PixelPet_Go/internal/domain"
)

// DefaultSnapshotBuffer is the channel size used when Subscribe is given a non-positive buffer
const DefaultSnapshotBuffer = 8

// PersistTimeout bounds the fire-and-forget store writes made during shutdown
const PersistTimeout = 5 * time.Second

// Command names used in rejection events
const (
	CommandSync            = "sync"
	CommandCreatePet       = "create_pet"
	CommandMintGlasses     = "mint_glasses"
	CommandStartInvestment = "start_investment"
	CommandClaimInvestment = "claim_investment"
	CommandStartChallenge  = "start_challenge"
)

// Player-facing notification messages
const (
	NotifySynced            = "Synced with the pet service!"
	NotifyPetPassedAway     = "Your pet passed away. Time to mourn."
	NotifySyncFailed        = "Failed to sync with the pet service. Connection error."
	NotifyActionFailed      = "%s failed! Check the logs for details."
	NotifyLevelUpFormat     = "LEVEL UP! Pet reached Level %d!"
	NotifyPetCreatedFormat  = "Your pet %s is alive!"
	NotifyPetCreateFailed   = "Pet creation failed! Check the logs for details."
	NotifyGlassesMinted     = "Cool Glasses minted!"
	NotifyClaimFailed       = "Failed to claim investment! Your balance will be resynced."
	NotifyConnectFirst      = "Please connect your wallet first!"
	NotifyCreatePetFirst    = "Please create your pet first!"
	NotifyBusyOrUnwell      = "Action in progress or pet is unwell."
	NotifyNotEnoughCoins    = "Not enough coins to invest!"
	NotifyInvestmentRunning = "An investment is already active."
)

// ActionSuccessMessages are shown after a care action succeeds. Play is announced by the challenge instead.
var ActionSuccessMessages = map[domain.ActionKind]string{
	domain.ActionFeed:     "Pet is full!",
	domain.ActionWork:     "Pet earned coins!",
	domain.ActionSleep:    "Pet is rested!",
	domain.ActionExercise: "Pet feels stronger!",
}

// Log messages
const (
	LogMsgHydrated             = "Game state hydrated"
	LogMsgHydrateFailed        = "Failed to read persisted game state, using defaults"
	LogMsgInvestmentLoadFailed = "Failed to read persisted investment"
	LogMsgConnected            = "Identity connected"
	LogMsgDisconnected         = "Identity disconnected"
	LogMsgSyncStarted          = "Syncing with pet service"
	LogMsgSyncFailed           = "Sync failed"
	LogMsgSyncCompleted        = "Sync completed"
	LogMsgSyncDiscarded        = "Discarding sync result for a stale identity"
	LogMsgActionRejected       = "Command rejected"
	LogMsgActionStarted        = "Performing pet action"
	LogMsgActionFailed         = "Pet action failed"
	LogMsgActionCompleted      = "Pet action completed"
	LogMsgLevelUp              = "Pet leveled up"
	LogMsgPetCreated           = "Pet created"
	LogMsgPetCreateFailed      = "Pet creation failed"
	LogMsgInvestmentStarted    = "Investment started"
	LogMsgInvestmentClaimed    = "Investment claimed"
	LogMsgSettlementFailed     = "Investment settlement failed"
	LogMsgPersistFailed        = "Failed to persist state"
	LogMsgChallengeStarted     = "Play challenge started"
	LogMsgChallengeResolved    = "Play challenge resolved"
	LogMsgShutdown             = "Game service shutting down"
)

// Error contexts
const (
	ErrContextFetchPet           = "failed to fetch pet"
	ErrContextFetchCoins         = "failed to fetch coins"
	ErrContextAction             = "pet action failed"
	ErrContextCreatePet          = "failed to create pet"
	ErrContextSettle             = "failed to settle investment"
	ErrContextEmptyIdentity      = "identity must not be empty"
	ErrContextEmptyName          = "pet name must not be empty"
	ErrContextPlayNeedsChallenge = "play must go through the challenge"
)
