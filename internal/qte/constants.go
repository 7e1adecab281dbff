package qte

import "time"

// Default challenge timing
const (
	DefaultDuration        = 1500 * time.Millisecond
	DefaultHalfWindow      = 100 * time.Millisecond
	DefaultActivationDelay = 300 * time.Millisecond
	DefaultMinOffset       = 0.1
	DefaultMaxOffset       = 0.9
)

// Player-facing messages
const (
	MsgSuccess = "Perfect timing! Pet is thrilled."
	MsgMiss    = "Missed! Pet wasn't impressed. Play failed."
	MsgTimeout = "Too slow! Pet got bored. Play failed."
)

// Log messages
const (
	LogMsgChallengeArmed    = "Play challenge armed"
	LogMsgChallengeRunning  = "Play challenge running"
	LogMsgChallengeResolved = "Play challenge resolved"
	LogMsgChallengeCanceled = "Play challenge cancelled"
)
