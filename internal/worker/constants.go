package worker

import "time"

const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// Shared by the timer-driven workers
const (
	LogMsgWorkerShuttingDown     = "Shutting down worker"
	LogMsgWorkerTimerCancelled   = "Cancelled pending worker timer"
	LogMsgWorkerShutdownComplete = "Worker shutdown complete"
	LogMsgWorkerShutdownTimeout  = "Worker shutdown timeout, some jobs may still be running"
)

const (
	LogMsgSyncScheduled = "Periodic sync scheduled"
	LogMsgSyncSkipped   = "Periodic sync skipped, an action is in progress"
	LogMsgSyncFailed    = "Periodic sync failed"

	LogMsgMoodCheckScheduled = "Mood check scheduled"
	LogMsgMoodRerolled       = "Mood re-rolled by scheduler"

	LogMsgMaturityScheduled = "Investment maturity scheduled"
	LogMsgMaturityCancelled = "Investment maturity cancelled"
	LogMsgInvestmentMatured = "Investment matured"
)

const (
	SyncWorkerName       = "sync worker"
	MoodWorkerName       = "mood worker"
	InvestmentWorkerName = "investment worker"

	syncTimerKey       = "sync"
	moodTimerKey       = "mood"
	investmentTimerKey = "investment"
)

// DefaultSyncInterval is used when a non-positive interval is configured
const DefaultSyncInterval = 30 * time.Second
