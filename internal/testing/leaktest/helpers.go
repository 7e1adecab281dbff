// Package leaktest checks that goroutines started by a test have exited when it ends.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// SettleTimeout bounds how long Check waits for goroutines to exit
const SettleTimeout = 2 * time.Second

// GoroutineChecker snapshots the goroutine count when created
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check polls until at most tolerance goroutines remain above the snapshot.
// It fails the test once SettleTimeout has passed.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(SettleTimeout)
	for {
		after := runtime.NumGoroutine()
		if after-g.before <= tolerance {
			return
		}
		if time.Now().After(deadline) {
			g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", g.before, after, tolerance)
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// AfterTest checks for leaked goroutines when t finishes
func AfterTest(t testing.TB) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	t.Cleanup(func() { checker.Check(0) })
}
