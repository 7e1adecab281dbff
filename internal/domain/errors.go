package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Precondition errors
	ErrMsgNotConnected      = "please connect your wallet first"
	ErrMsgNoPet             = "please create your pet first"
	ErrMsgPetUnwell         = "pet is unwell"
	ErrMsgActionInProgress  = "an action is already in progress"
	ErrMsgInvalidAction     = "invalid action"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgInsufficientCoins = "not enough coins"

	// Investment errors
	ErrMsgInvestmentActive     = "an investment is already active"
	ErrMsgNoActiveInvestment   = "no active investment"
	ErrMsgInvestmentNotMatured = "investment has not matured yet"
	ErrMsgSettlementFailed     = "investment settlement failed"

	// Challenge errors
	ErrMsgChallengeActive     = "a play challenge is already active"
	ErrMsgChallengeNotRunning = "play challenge is not running"

	// Pet service errors
	ErrMsgRemoteUnavailable = "pet service unavailable"
	ErrMsgPetNotFound       = "pet not found"
	ErrMsgPetAlreadyExists  = "pet already exists for this owner"
	ErrMsgPetDead           = "cannot perform action on a dead pet"
	ErrMsgNotEnoughEnergy   = "not enough energy"
	ErrMsgAccessoryOwned    = "accessory already owned"

	// Store errors
	ErrMsgStoreNotFound = "key not found"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Precondition errors
	ErrNotConnected      = errors.New(ErrMsgNotConnected)
	ErrNoPet             = errors.New(ErrMsgNoPet)
	ErrPetUnwell         = errors.New(ErrMsgPetUnwell)
	ErrActionInProgress  = errors.New(ErrMsgActionInProgress)
	ErrInvalidAction     = errors.New(ErrMsgInvalidAction)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrInsufficientCoins = errors.New(ErrMsgInsufficientCoins)

	// Investment errors
	ErrInvestmentActive     = errors.New(ErrMsgInvestmentActive)
	ErrNoActiveInvestment   = errors.New(ErrMsgNoActiveInvestment)
	ErrInvestmentNotMatured = errors.New(ErrMsgInvestmentNotMatured)
	ErrSettlementFailed     = errors.New(ErrMsgSettlementFailed)

	// Challenge errors
	ErrChallengeActive     = errors.New(ErrMsgChallengeActive)
	ErrChallengeNotRunning = errors.New(ErrMsgChallengeNotRunning)

	// Pet service errors
	ErrRemoteUnavailable = errors.New(ErrMsgRemoteUnavailable)
	ErrPetNotFound       = errors.New(ErrMsgPetNotFound)
	ErrPetAlreadyExists  = errors.New(ErrMsgPetAlreadyExists)
	ErrPetDead           = errors.New(ErrMsgPetDead)
	ErrNotEnoughEnergy   = errors.New(ErrMsgNotEnoughEnergy)
	ErrAccessoryOwned    = errors.New(ErrMsgAccessoryOwned)

	// Store errors
	ErrStoreNotFound = errors.New(ErrMsgStoreNotFound)
)

// IsPrecondition reports whether err is a rejection that happened before any remote call
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNotConnected) ||
		errors.Is(err, ErrNoPet) ||
		errors.Is(err, ErrPetUnwell) ||
		errors.Is(err, ErrActionInProgress)
}
