package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomInt(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomInt(3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
	}
	assert.Equal(t, 7, RandomInt(7, 2), "min > max returns min")
}

func TestRandomFloat(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := DefaultSource().Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSequenceSource(t *testing.T) {
	s := NewSequenceSource(0.1, 0.9)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 3, s.Calls())

	assert.Equal(t, 0.0, NewSequenceSource().Float64())
}
