package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidActionKind     = "Unknown action. Valid actions: feed, work, sleep, exercise"
	ErrMsgPlayNeedsChallenge    = "Play is started through the play challenge"
)

// Success messages for API responses
const (
	MsgConnected          = "Connected"
	MsgDisconnected       = "Disconnected"
	MsgSynced             = "Synced"
	MsgChallengeStarted   = "Get ready..."
	MsgChallengeCancelled = "Challenge cancelled"
	MsgNoChallenge        = "No challenge to cancel"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgValidationFailed  = "Request validation failed"
	LogMsgServiceError      = "Service call failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgStreamAcceptFail  = "Failed to accept snapshot stream"
	LogMsgStreamOpened      = "Snapshot stream opened"
	LogMsgStreamClosed      = "Snapshot stream closed"
	LogMsgStreamWriteFailed = "Failed to write snapshot"
)
