package clock

import "time"

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the subset of *time.Timer the game needs.
type Timer interface {
	Stop() bool
}

// Real uses the system clock.
type Real struct{}

// Now returns the current time using the system clock.
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f on its own goroutine after d.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
