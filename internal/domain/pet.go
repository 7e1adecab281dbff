package domain

import (
	"fmt"
	"time"
)

// ItemID identifies a cosmetic item owned or worn by the pet
type ItemID string

// ActionKind is one of the care actions the pet service accepts
type ActionKind string

const (
	ActionFeed     ActionKind = "feed"
	ActionPlay     ActionKind = "play"
	ActionWork     ActionKind = "work"
	ActionSleep    ActionKind = "sleep"
	ActionExercise ActionKind = "exercise"
)

// AllActions lists the action kinds in display order
var AllActions = []ActionKind{ActionFeed, ActionPlay, ActionWork, ActionSleep, ActionExercise}

// ParseActionKind validates an action name
func ParseActionKind(s string) (ActionKind, error) {
	for _, k := range AllActions {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Pet is the full record returned by every pet service call.
// Every successful call replaces the local stats wholesale, so no partial updates exist.
type Pet struct {
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Birthdate   time.Time `json:"birthdate"`
	LastUpdated time.Time `json:"last_updated"`
	IsAlive     bool      `json:"is_alive"`
	Hunger      int       `json:"hunger"`
	Happiness   int       `json:"happiness"`
	Energy      int       `json:"energy"`
	Level       int       `json:"level"`
	XP          int64     `json:"xp"`
	NextLevelXP int64     `json:"next_level_xp"`
	SpeciesID   int       `json:"species_id"`
	Accessories uint32    `json:"accessories"`
}

// Stats converts the remote record into the locally mirrored stats
func (p *Pet) Stats() PetStats {
	return PetStats{
		Hunger:      p.Hunger,
		Happy:       p.Happiness,
		Energy:      p.Energy,
		Level:       p.Level,
		XP:          p.XP,
		NextLevelXP: p.NextLevelXP,
		SpeciesID:   p.SpeciesID,
	}
}

// PetStats mirrors the last fetched pet. Values are 0-100 by convention but are not clamped here.
type PetStats struct {
	Hunger      int   `json:"hunger"`
	Happy       int   `json:"happy"`
	Energy      int   `json:"energy"`
	Level       int   `json:"level"`
	XP          int64 `json:"xp"`
	NextLevelXP int64 `json:"nextLevelXp"`
	SpeciesID   int   `json:"speciesId"`
}

// DefaultPetStats returns the stats shown before any pet has been fetched
func DefaultPetStats() PetStats {
	return PetStats{
		Hunger:      DefaultStatValue,
		Happy:       DefaultStatValue,
		Energy:      DefaultStatValue,
		Level:       DefaultLevel,
		NextLevelXP: DefaultNextLevelXP,
	}
}

// Incapacitated reports whether the pet is too hungry or sad to act
func (s PetStats) Incapacitated() bool {
	return s.Hunger <= 0 || s.Happy <= 0
}

// DecodeAccessories turns the accessory bitmask into a sorted item set
func DecodeAccessories(mask uint32) []ItemID {
	items := []ItemID{}
	if mask&AccessoryGlasses != 0 {
		items = append(items, ItemCoolGlasses)
	}
	return items
}
