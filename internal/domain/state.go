package domain

import (
	"slices"
	"time"
)

// GameState is the aggregate owned by the reconciler. Presentation only ever sees copies.
type GameState struct {
	Stats         PetStats    `json:"stats"`
	Coins         int64       `json:"coins"`
	Inventory     []ItemID    `json:"inventory"`
	EquippedItems []ItemID    `json:"equippedItems"`
	IsSleeping    bool        `json:"isSleeping"`
	LastUpdate    time.Time   `json:"lastUpdate"`
	PetMood       PetMood     `json:"petMood"`
	PetName       string      `json:"petName,omitempty"`
	HasRealPet    bool        `json:"hasRealPet"`
	Investment    *Investment `json:"investment,omitempty"`
}

// DefaultGameState is the zero state used at start and after an identity disconnects
func DefaultGameState(now time.Time) GameState {
	return GameState{
		Stats:         DefaultPetStats(),
		Inventory:     []ItemID{},
		EquippedItems: []ItemID{},
		LastUpdate:    now,
		PetMood:       PetMoodNeutral,
	}
}

// Clone returns a deep copy
func (g GameState) Clone() GameState {
	c := g
	c.Inventory = slices.Clone(g.Inventory)
	c.EquippedItems = slices.Clone(g.EquippedItems)
	if c.Inventory == nil {
		c.Inventory = []ItemID{}
	}
	if c.EquippedItems == nil {
		c.EquippedItems = []ItemID{}
	}
	if g.Investment != nil {
		inv := *g.Investment
		c.Investment = &inv
	}
	return c
}

// SameContent compares two states ignoring LastUpdate
func (g GameState) SameContent(o GameState) bool {
	if g.Stats != o.Stats || g.Coins != o.Coins || g.IsSleeping != o.IsSleeping ||
		g.PetMood != o.PetMood || g.PetName != o.PetName || g.HasRealPet != o.HasRealPet {
		return false
	}
	if !slices.Equal(g.Inventory, o.Inventory) || !slices.Equal(g.EquippedItems, o.EquippedItems) {
		return false
	}
	switch {
	case g.Investment == nil && o.Investment == nil:
		return true
	case g.Investment == nil || o.Investment == nil:
		return false
	default:
		return g.Investment.Equal(*o.Investment)
	}
}

// HasItem reports whether the item is in the inventory set
func (g GameState) HasItem(id ItemID) bool {
	return slices.Contains(g.Inventory, id)
}

// Investment is a local escrow of coins awaiting a randomized payout
type Investment struct {
	Amount        int64     `json:"amount"`
	StartTime     time.Time `json:"startTime"`
	DurationHours int       `json:"durationHours"`
	IsActive      bool      `json:"isActive"`
	// Owner is the identity whose coins were escrowed. Empty on records written before it existed.
	Owner string `json:"owner,omitempty"`
}

// OwnedBy reports whether identity may see and claim the investment
func (i Investment) OwnedBy(identity string) bool {
	return i.Owner == "" || i.Owner == identity
}

// Duration returns the lock-up period
func (i Investment) Duration() time.Duration {
	return time.Duration(i.DurationHours) * time.Hour
}

// MaturesAt returns when the investment becomes claimable
func (i Investment) MaturesAt() time.Time {
	return i.StartTime.Add(i.Duration())
}

// Equal compares two investments, treating instants as equal across locations
func (i Investment) Equal(o Investment) bool {
	return i.Amount == o.Amount && i.StartTime.Equal(o.StartTime) &&
		i.DurationHours == o.DurationHours && i.IsActive == o.IsActive && i.Owner == o.Owner
}
