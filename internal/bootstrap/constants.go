package bootstrap

import "time"

const (
	DirPermission     = 0755
	LogFilePermission = 0644
)

const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// Older session logs kept next to the new one
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingPixelPet    = "Starting PixelPet"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

const (
	EventDefaultMaxRetries     = 5
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"

	// Doubled per attempt
	EventDefaultRetryDelay = 2 * time.Second
)

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

const (
	// StoreProbeKey is read by the readiness check; a missing key counts as healthy
	StoreProbeKey = "pixelpet:readiness"

	// Names reported by /readyz
	ReadinessStore      = "store"
	ReadinessDatabase   = "database"
	ReadinessPetService = "pet_service"
)

const (
	LogMsgStoreInitialized    = "Store initialized"
	LogMsgMigrationsApplied   = "Database migrations applied"
	LogMsgPetClientRemote     = "Using remote pet service"
	LogMsgPetClientSimulator  = "Using in-process pet simulator"
	ErrMsgUnknownStoreBackend = "unknown store backend"
	ErrMsgFailedOpenStore     = "failed to open store"
	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedMigrate       = "failed to apply migrations"
)

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
	LogMsgWorkersSubscribed          = "Workers subscribed to events"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

const (
	LogMsgShuttingDownServer         = "Draining HTTP server"
	LogMsgShuttingDownEventPublisher = "Draining event publisher"
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server shutdown deadline exceeded"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgStoreCloseFailed           = "Store close failed"
	LogMsgDiscordStopFailed          = "Discord bot shutdown failed"

	ComponentSyncWorker       = "sync worker"
	ComponentMoodWorker       = "mood worker"
	ComponentInvestmentWorker = "investment worker"
	ComponentGame             = "game service"

	LogMsgComponentShutdownFailed = " shutdown failed"
)
