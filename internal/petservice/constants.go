package petservice

import "time"

// Pet rules
const (
	MaxStat         = 100
	BaseXPRequired  = 100
	GlassesCost     = 50
	DecayHungerRate = 2
	DecayHappyRate  = 1
	SpeciesCount    = 3

	// Each level past the first slows decay by 1%, capped at 20%
	MaxDecayReduction = 20
)

// DefaultDecayInterval is the length of one decay period
const DefaultDecayInterval = time.Minute

// HTTP routes
const (
	RouteHealth  = "/healthz"
	RoutePet     = "/pets/{owner}"
	RouteCoins   = "/pets/{owner}/coins"
	RouteAction  = "/pets/{owner}/actions/{kind}"
	RouteGlasses = "/pets/{owner}/glasses"

	HeaderAPIKey    = "X-API-Key"
	ContentTypeJSON = "application/json"
)

// Error codes carried in gateway error responses
const (
	CodePetNotFound       = "pet_not_found"
	CodePetAlreadyExists  = "pet_already_exists"
	CodePetDead           = "pet_dead"
	CodeNotEnoughEnergy   = "not_enough_energy"
	CodeAccessoryOwned    = "accessory_owned"
	CodeInsufficientCoins = "insufficient_coins"
	CodeInvalidInput      = "invalid_input"
	CodeInvalidAction     = "invalid_action"
	CodeUnauthorized      = "unauthorized"
	CodeInternal          = "internal"
)

// HTTP client settings
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// Log messages
const (
	LogMsgRetryingRequest = "Retrying pet service request"
	LogMsgRequestFailed   = "Pet service request failed"
	LogMsgServerError     = "Pet service server error, will retry"
	LogMsgPetDecayed      = "Pet stats decayed"
	LogMsgPetDied         = "Pet died"
	LogMsgGatewayError    = "Pet gateway request failed"
)
