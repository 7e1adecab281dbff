package sse

import "time"

const (
	broadcastQueueSize = 128
	clientBufferSize   = 32
)

// KeepaliveInterval is how often an idle stream receives a comment line
const KeepaliveInterval = 25 * time.Second

// EventTypeConnected is sent once when a stream opens. Game events keep their bus type names (e.g. "pet.action").
const EventTypeConnected = "connected"

// FilterQueryParam selects event types, comma separated
const FilterQueryParam = "types"

const (
	LogMsgClientConnected    = "Event stream opened"
	LogMsgClientDisconnected = "Event stream closed"
	LogMsgEventBroadcast     = "Forwarding event to streams"
	LogMsgEventDropped       = "Stream queue full, event dropped"
	LogMsgWriteError         = "Failed to write stream frame"
	LogMsgSubscribed         = "Event streams subscribed to bus"
)
