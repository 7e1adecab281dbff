package mood

// Notification messages
const (
	NotifyMoodRolledFormat = "Today's Mood: %s"
)

// Log messages
const (
	LogMsgMoodLoaded        = "Mood state loaded"
	LogMsgMoodStale         = "Persisted mood is stale, re-rolling"
	LogMsgMoodMissing       = "No persisted mood, using default"
	LogMsgMoodRolled        = "Rolled new mood"
	LogMsgMoodLoadFailed    = "Failed to load mood state, using default"
	LogMsgMoodPersistFailed = "Failed to persist mood state"
)
