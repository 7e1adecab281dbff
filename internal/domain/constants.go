package domain

import "time"

// Stat thresholds used when deriving the pet's mood
const (
	LowStatThreshold   = 20
	HappyMeanThreshold = 80
)

// Default pet values, used before the first sync and after a disconnect
const (
	DefaultStatValue   = 100
	DefaultLevel       = 1
	DefaultNextLevelXP = 200
)

// Item identifiers
const (
	ItemCoolGlasses ItemID = "cool-glasses"
)

// Accessory bitmask flags as reported by the pet service
const (
	AccessoryGlasses uint32 = 0b0001
)

// MoodCheckInterval is how long a rolled mood stays valid
const MoodCheckInterval = 24 * time.Hour

// Mood messages
const (
	MoodMessageDefault = "A perfect day!"
	MoodMessageBoost   = "Energetic Mood: +20% efficiency on Exercise!"
	MoodMessagePenalty = "Grumpy Mood: -50% coin gain from Work."
	MoodMessageNeutral = "A peaceful day. All actions are normal."
)

// Persisted store keys
const (
	StoreKeyGameState  = "pixelPetGame"
	StoreKeyMoodState  = "pixelPetMood"
	StoreKeyInvestment = "pixelPetInvestment"
)
