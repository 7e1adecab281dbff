package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Event is what travels on the bus. Payload is one of the domain payload structs;
// after a trip through JSON it may be a map, which DecodePayload handles.
type Event struct {
	Version  string            `json:"version"`
	Type     Type              `json:"type"`
	Payload  any               `json:"payload"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Meta returns a metadata value, or "" when absent
func (e Event) Meta(key string) string {
	return e.Metadata[key]
}

// Handler reacts to one event. A returned error is reported to the publisher.
type Handler func(ctx context.Context, evt Event) error

// Bus delivers events to the handlers subscribed to their type
type Bus interface {
	Publish(ctx context.Context, evt Event) error
	Subscribe(t Type, h Handler)
}

// Publisher is the fire-and-forget side used by the game, satisfied by *ResilientPublisher
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt Event)
}

// MemoryBus runs handlers synchronously on the publishing goroutine, in subscription order
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish calls every handler even when some fail, then joins their errors
func (b *MemoryBus) Publish(ctx context.Context, evt Event) error {
	b.mu.RLock()
	handlers := slices.Clone(b.handlers[evt.Type])
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %s: %w", ErrMsgHandlersFailed, evt.Type, err)
	}
	return nil
}

func (b *MemoryBus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers h for every game event type
func SubscribeAll(bus Bus, h Handler) {
	for _, t := range AllTypes {
		bus.Subscribe(t, h)
	}
}

// DecodePayload returns the payload as T, converting through JSON when it is not already a T
func DecodePayload[T any](payload any) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}
	var out T
	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("marshal %T payload: %w", payload, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode payload as %T: %w", out, err)
	}
	return out, nil
}
