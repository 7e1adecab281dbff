package domain

import "time"

// PetMood is a presentation hint derived from the stats
type PetMood string

const (
	PetMoodHappy    PetMood = "happy"
	PetMoodNeutral  PetMood = "neutral"
	PetMoodSad      PetMood = "sad"
	PetMoodSleeping PetMood = "sleeping"
)

// DeriveMood computes the pet's mood. It is never persisted on its own.
func DeriveMood(stats PetStats, isSleeping, isAlive bool) PetMood {
	if !isAlive {
		return PetMoodSad
	}
	if isSleeping {
		return PetMoodSleeping
	}
	if stats.Hunger < LowStatThreshold || stats.Happy < LowStatThreshold || stats.Energy < LowStatThreshold {
		return PetMoodSad
	}
	mean := float64(stats.Hunger+stats.Happy+stats.Energy) / 3
	if mean > HappyMeanThreshold {
		return PetMoodHappy
	}
	return PetMoodNeutral
}

// MoodType is the daily gameplay modifier rolled by the mood scheduler
type MoodType string

const (
	MoodTypeBoost   MoodType = "boost"
	MoodTypeNeutral MoodType = "neutral"
	MoodTypePenalty MoodType = "penalty"
)

// MoodState is the locally persisted daily modifier
type MoodState struct {
	MoodType      MoodType  `json:"moodType"`
	Message       string    `json:"message"`
	LastMoodCheck time.Time `json:"lastMoodCheck"`
}

// DefaultMoodState is used when nothing has been persisted yet
func DefaultMoodState(now time.Time) MoodState {
	return MoodState{
		MoodType:      MoodTypeNeutral,
		Message:       MoodMessageDefault,
		LastMoodCheck: now,
	}
}

// Due reports whether the mood window has elapsed
func (m MoodState) Due(now time.Time) bool {
	return now.Sub(m.LastMoodCheck) >= MoodCheckInterval
}

// NextCheck returns when the current mood expires
func (m MoodState) NextCheck() time.Time {
	return m.LastMoodCheck.Add(MoodCheckInterval)
}
