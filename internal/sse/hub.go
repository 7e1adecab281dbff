package sse

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PixelPet_Go/internal/logger"
)

// Event is one frame on the stream. IDs increase monotonically per hub.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Client is one open stream
type Client struct {
	ID      string
	types   map[string]struct{}
	send    chan Event
	dropped atomic.Int64
}

// Events delivers the frames for this client. It is closed when the client is unregistered or the hub stops.
func (c *Client) Events() <-chan Event { return c.send }

// Filtered reports whether the client restricted itself to specific event types
func (c *Client) Filtered() bool { return len(c.types) > 0 }

// Dropped counts frames this client missed because its buffer was full
func (c *Client) Dropped() int64 { return c.dropped.Load() }

func (c *Client) wants(eventType string) bool {
	if len(c.types) == 0 {
		return true
	}
	_, ok := c.types[eventType]
	return ok
}

// Hub fans events out to the open streams. Slow clients miss events instead of stalling the hub.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	stopped bool

	queue chan Event
	seq   atomic.Uint64
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		queue:   make(chan Event, broadcastQueueSize),
		done:    make(chan struct{}),
	}
}

// Start launches the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case evt := <-h.queue:
				h.fanOut(evt)
			case <-h.done:
				return
			}
		}
	}()
}

// Stop ends the fan-out loop and closes every client. Safe to call more than once.
func (h *Hub) Stop() {
	h.once.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		h.stopped = true
		for id, c := range h.clients {
			close(c.send)
			delete(h.clients, id)
		}
	})
}

func (h *Hub) fanOut(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		if !c.wants(evt.Type) {
			continue
		}
		select {
		case c.send <- evt:
		default:
			c.dropped.Add(1)
		}
	}
}

// Register opens a client. Blank type names are ignored; no types means every event.
// Registering after Stop returns a client whose channel is already closed.
func (h *Hub) Register(eventTypes []string) *Client {
	c := &Client{ID: uuid.NewString(), send: make(chan Event, clientBufferSize)}
	for _, t := range eventTypes {
		if t = strings.TrimSpace(t); t != "" {
			if c.types == nil {
				c.types = make(map[string]struct{})
			}
			c.types[t] = struct{}{}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		close(c.send)
		return c
	}
	h.clients[c.ID] = c
	return c
}

// Unregister closes the client's channel. Unknown IDs are ignored.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		close(c.send)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for every interested client. A full queue drops the event.
func (h *Hub) Broadcast(eventType string, payload any) {
	evt := h.newEvent(eventType, payload)
	select {
	case h.queue <- evt:
	default:
		logger.FromContext(context.Background()).Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

func (h *Hub) newEvent(eventType string, payload any) Event {
	return Event{
		ID:        strconv.FormatUint(h.seq.Add(1), 10),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
}

// ClientCount returns the number of open streams
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
