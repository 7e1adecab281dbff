package discord

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrNotConnected is reported by CheckHealth until the gateway session is ready
var ErrNotConnected = errors.New("discord session not ready")

// HealthStatus is the bot's connection state and command counters
type HealthStatus struct {
	Status           string    `json:"status"`
	Uptime           string    `json:"uptime"`
	Connected        bool      `json:"connected"`
	CommandsReceived int64     `json:"commands_received"`
	LastCommandTime  time.Time `json:"last_command_time,omitempty"`
}

type commandStats struct {
	started  time.Time
	received atomic.Int64
	lastNano atomic.Int64
}

func (c *commandStats) record(at time.Time) {
	c.received.Add(1)
	c.lastNano.Store(at.UnixNano())
}

func (c *commandStats) last() time.Time {
	n := c.lastNano.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func (b *Bot) Health() HealthStatus {
	connected := b.Session != nil && b.Session.DataReady
	h := HealthStatus{
		Status:           StatusHealthy,
		Uptime:           time.Since(b.stats.started).Round(time.Second).String(),
		Connected:        connected,
		CommandsReceived: b.stats.received.Load(),
		LastCommandTime:  b.stats.last(),
	}
	if !connected {
		h.Status = StatusDegraded
	}
	return h
}

// CheckHealth lets the bot take part in the server's readiness probe
func (b *Bot) CheckHealth(context.Context) error {
	if b.Session == nil || !b.Session.DataReady {
		return ErrNotConnected
	}
	return nil
}
