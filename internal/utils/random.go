package utils

import (
	"math/rand"
	"sync"
)

// RandomSource yields uniform floats in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// DefaultSource returns the process-wide math/rand source
func DefaultSource() RandomSource {
	return globalSource{}
}

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// SequenceSource replays fixed values, wrapping around. Used to pin random outcomes in tests.
type SequenceSource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequenceSource creates a source that returns values in order
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

// Float64 returns the next value in the sequence, or 0 when empty
func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Calls returns how many values have been drawn
func (s *SequenceSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
