package concurrency

import (
	"sync"
	"sync/atomic"
)

// Gate is a non-blocking single-holder lock. Callers that lose the race are
// turned away instead of queued.
type Gate struct {
	busy atomic.Bool
}

// NewGate creates an open gate
func NewGate() *Gate {
	return &Gate{}
}

// TryAcquire claims the gate, reporting false if it is already held
func (g *Gate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release opens the gate. Releasing an open gate is a no-op.
func (g *Gate) Release() {
	g.busy.Store(false)
}

// Busy reports whether the gate is currently held
func (g *Gate) Busy() bool {
	return g.busy.Load()
}

// LockManager hands out named mutexes, one per key
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
