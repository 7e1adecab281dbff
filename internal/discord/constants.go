package discord

import "time"

// Embed colors
const (
	ColorSuccess = 0x2ECC71
	ColorError   = 0xE74C3C
	ColorInfo    = 0x5865F2
	ColorLoading = 0x95A5A6
	ColorGold    = 0xFFD700
)

// Footer for every embed the bot sends
const FooterPixelPet = "PixelPet"

// Relay settings
const (
	RelayWorkers   = 1
	RelayQueueSize = 64
	CommandTimeout = 15 * time.Second
)

// Log messages
const (
	LogMsgBotReady            = "Discord gateway ready"
	LogMsgBotRunning          = "Discord bot running"
	LogMsgCommandsSkipped     = "DISCORD_APP_ID unset, slash commands not registered"
	LogMsgNotificationSent    = "Discord notification sent"
	LogMsgNotificationError   = "Failed to send Discord notification"
	LogMsgNotificationDropped = "Discord relay queue full, notification dropped"
	LogMsgUnexpectedPayload   = "Unexpected notification payload"
	LogMsgCommandsChecking    = "Checking Discord commands..."
	LogMsgCommandsUnchanged   = "Commands unchanged, skipping registration"
	LogMsgCommandsUpdated     = "Commands updated successfully"
	LogMsgRespondFailed       = "Failed to respond to interaction"
	LogMsgCommandFailed       = "Command failed"
)

const (
	ErrMsgMissingToken  = "discord token is empty"
	ErrMsgCreateSession = "create discord session"
	ErrMsgOpenGateway   = "open discord gateway"
)

// Health status values
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Command and option names
const (
	CommandPing   = "ping"
	CommandPet    = "pet"
	CommandInvest = "invest"

	SubcommandStatus  = "status"
	SubcommandCare    = "care"
	SubcommandGlasses = "glasses"
	SubcommandStart   = "start"
	SubcommandClaim   = "claim"

	OptionAction = "action"
	OptionAmount = "amount"
	OptionHours  = "hours"
)
