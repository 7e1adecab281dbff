package domain

import "time"

// NotificationLevel mirrors the kinds of transient messages shown to the player
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationLoading NotificationLevel = "loading"
)

// Notification is a transient, user-visible message. Failures never surface any other way.
type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}
