package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveMood(t *testing.T) {
	tests := []struct {
		name       string
		stats      PetStats
		isSleeping bool
		isAlive    bool
		want       PetMood
	}{
		{"dead pet is sad", PetStats{Hunger: 100, Happy: 100, Energy: 100}, false, false, PetMoodSad},
		{"dead and sleeping is still sad", PetStats{Hunger: 100, Happy: 100, Energy: 100}, true, false, PetMoodSad},
		{"sleeping wins over low stats", PetStats{Hunger: 1, Happy: 1, Energy: 1}, true, true, PetMoodSleeping},
		{"low hunger", PetStats{Hunger: 19, Happy: 100, Energy: 100}, false, true, PetMoodSad},
		{"low happiness", PetStats{Hunger: 100, Happy: 0, Energy: 100}, false, true, PetMoodSad},
		{"low energy", PetStats{Hunger: 100, Happy: 100, Energy: 5}, false, true, PetMoodSad},
		{"threshold is not sad", PetStats{Hunger: 20, Happy: 20, Energy: 20}, false, true, PetMoodNeutral},
		{"mean above 80", PetStats{Hunger: 81, Happy: 81, Energy: 81}, false, true, PetMoodHappy},
		{"mean exactly 80", PetStats{Hunger: 80, Happy: 80, Energy: 80}, false, true, PetMoodNeutral},
		{"mean just above 80 with uneven stats", PetStats{Hunger: 100, Happy: 100, Energy: 41}, false, true, PetMoodHappy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveMood(tt.stats, tt.isSleeping, tt.isAlive))
		})
	}
}

func TestDeriveMood_AnyLowComponentIsSad(t *testing.T) {
	for low := 0; low < LowStatThreshold; low++ {
		for other := 0; other <= 100; other += 10 {
			assert.Equal(t, PetMoodSad, DeriveMood(PetStats{Hunger: low, Happy: other, Energy: other}, false, true))
			assert.Equal(t, PetMoodSad, DeriveMood(PetStats{Hunger: other, Happy: low, Energy: other}, false, true))
			assert.Equal(t, PetMoodSad, DeriveMood(PetStats{Hunger: other, Happy: other, Energy: low}, false, true))
		}
	}
}

func TestDeriveMood_SleepingIgnoresStats(t *testing.T) {
	for v := 0; v <= 100; v += 5 {
		assert.Equal(t, PetMoodSleeping, DeriveMood(PetStats{Hunger: v, Happy: 100 - v, Energy: v}, true, true))
	}
}

func TestMoodState_Due(t *testing.T) {
	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	assert.True(t, MoodState{LastMoodCheck: now.Add(-25 * time.Hour)}.Due(now))
	assert.True(t, MoodState{LastMoodCheck: now.Add(-24 * time.Hour)}.Due(now))
	assert.False(t, MoodState{LastMoodCheck: now.Add(-time.Hour)}.Due(now))
	assert.Equal(t, now.Add(23*time.Hour), MoodState{LastMoodCheck: now.Add(-time.Hour)}.NextCheck())
}
