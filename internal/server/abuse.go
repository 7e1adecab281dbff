package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// AbuseTracker counts failed logins and throttled requests per client.
// A client's count expires after a quiet SecurityWindow.
type AbuseTracker struct {
	failedAuth *window
	throttled  *window
}

func NewAbuseTracker() *AbuseTracker {
	return &AbuseTracker{
		failedAuth: newWindow(SecurityWindow),
		throttled:  newWindow(SecurityWindow),
	}
}

// FailedAuth records a rejected API key and alerts from FailedAuthThreshold on
func (a *AbuseTracker) FailedAuth(ip string) int {
	n := a.failedAuth.incr(ip)
	if n >= FailedAuthThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
	return n
}

// Throttled records a rate-limited request and alerts on every ThrottleAlertThreshold-th one
func (a *AbuseTracker) Throttled(ip string) int {
	n := a.throttled.incr(ip)
	if n%ThrottleAlertThreshold == 0 {
		slog.Warn(SecurityAlertThrottled, "ip", ip, "count_in_window", n)
	}
	return n
}

type window struct {
	mu     sync.Mutex
	counts *expirable.LRU[string, int]
}

func newWindow(ttl time.Duration) *window {
	return &window{counts: expirable.NewLRU[string, int](TrackedClients, nil, ttl)}
}

func (w *window) incr(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, _ := w.counts.Peek(key)
	n++
	w.counts.Add(key, n)
	return n
}

func (w *window) count(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, _ := w.counts.Peek(key)
	return n
}
