package event

import "time"

// EventSchemaVersion is stamped on every event the game publishes
const EventSchemaVersion = "1.0"

// Retry queue limits
const (
	RetryQueueBufferSize = 256

	// MaxRetryDelay caps the exponential backoff between attempts
	MaxRetryDelay = 5 * time.Minute
)

// DeadLetterFilePermissions is the file mode for the dead-letter log
const DeadLetterFilePermissions = 0644

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event dead-lettered"

	ErrMsgHandlersFailed = "event handlers failed"
)

// CalculateRetryDelay doubles baseDelay for every attempt after the first, capped at MaxRetryDelay
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= MaxRetryDelay {
			return MaxRetryDelay
		}
	}
	return delay
}
