package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	before := time.Now()
	got := Real{}.Now()
	assert.False(t, got.Before(before))
}

func TestFake_AdvanceFiresInOrder(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFake(start)

	var fired []string
	c.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	stopped := c.AfterFunc(1500*time.Millisecond, func() { fired = append(fired, "never") })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, 1, c.Pending())

	c.Advance(time.Second)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, start.Add(2500*time.Millisecond), c.Now())
	assert.Zero(t, c.Pending())
}

func TestFake_TimerScheduledFromCallback(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	count := 0
	c.AfterFunc(time.Second, func() {
		count++
		c.AfterFunc(time.Second, func() { count++ })
	})

	c.Advance(3 * time.Second)
	assert.Equal(t, 2, count)
}
