package game

import (
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/investment"
	"github.com/osse101/PixelPet_Go/internal/qte"
)

// Snapshot is a read-only copy of everything a presentation layer renders
type Snapshot struct {
	Game       domain.GameState   `json:"game"`
	Mood       domain.MoodState   `json:"mood"`
	IsLoading  bool               `json:"isLoading"`
	Identity   string             `json:"identity,omitempty"`
	Connected  bool               `json:"connected"`
	Challenge  qte.State          `json:"challenge"`
	Investment *investment.Status `json:"investmentStatus,omitempty"`
}

// Snapshot returns a deep copy of the current state
func (s *service) Snapshot() Snapshot {
	s.mu.RLock()
	game := s.state.Clone()
	identity := s.identity
	challenge := s.challenge
	s.mu.RUnlock()

	snap := Snapshot{
		Game:      game,
		Mood:      s.Mood(),
		IsLoading: s.gate.Busy(),
		Identity:  identity,
		Connected: identity != "",
		Challenge: qte.State{Phase: qte.PhaseIdle},
	}
	if challenge != nil {
		snap.Challenge = challenge.State()
	}
	if game.Investment != nil {
		status := investment.StatusAt(*game.Investment, s.clock.Now())
		snap.Investment = &status
	}
	return snap
}

// Subscribe registers a snapshot listener. Delivery never blocks: a full channel drops the snapshot.
// The returned func unsubscribes and closes the channel.
func (s *service) Subscribe(buffer int) (<-chan Snapshot, func()) {
	if buffer <= 0 {
		buffer = DefaultSnapshotBuffer
	}
	ch := make(chan Snapshot, buffer)
	initial := s.Snapshot()

	s.subMu.Lock()
	if s.closed {
		s.subMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	ch <- initial
	s.subMu.Unlock()

	unsubscribe := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if existing, ok := s.subscribers[id]; ok {
			close(existing)
			delete(s.subscribers, id)
		}
	}
	return ch, unsubscribe
}

func (s *service) broadcast() {
	snap := s.Snapshot()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}
