package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/PixelPet_Go/internal/logger"
)

func isPublic(path string) bool { return matchesAny(path, PublicPaths) }

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware requires the X-API-Key header on every non-public path.
// Stream paths also accept the key as a query parameter on GET.
func AuthMiddleware(apiKey string, ips ClientIP, abuse *AbuseTracker) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(HeaderAPIKey)
			if key == "" && r.Method == http.MethodGet && matchesAny(r.URL.Path, StreamPaths) {
				key = r.URL.Query().Get(QueryParamAPIKey)
			}
			if subtle.ConstantTimeCompare([]byte(key), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := ips.Resolve(r)
			abuse.FailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed, "ip", ip, "path", r.URL.Path, "has_key", key != "")
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RateLimiter keeps one token bucket per client. Buckets idle for RateLimiterIdleTTL are forgotten.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows rps requests per second per client with the given burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: expirable.NewLRU[string, *rate.Limiter](TrackedClients, nil, RateLimiterIdleTTL),
		limit:   rate.Limit(rps),
		burst:   burst,
	}
}

// Allow takes a token from ip's bucket
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	bucket, ok := l.buckets.Get(ip)
	if !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
	}
	// Re-adding refreshes the idle expiry
	l.buckets.Add(ip, bucket)
	l.mu.Unlock()
	return bucket.Allow()
}

// RateLimitMiddleware answers 429 with Retry-After once a client's bucket is empty. Probes are exempt.
func RateLimitMiddleware(ips ClientIP, limiter *RateLimiter, abuse *AbuseTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			ip := ips.Resolve(r)
			if limiter.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}
			abuse.Throttled(ip)
			logger.FromContext(r.Context()).Debug(LogMsgRateLimited, "ip", ip, "path", r.URL.Path)
			w.Header().Set(HeaderRetryAfter, RetryAfterSeconds)
			http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
		})
	}
}

// BodyLimitMiddleware caps request bodies at maxBytes
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

var securityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"Referrer-Policy":        "no-referrer",
	"Cache-Control":          "no-store",
}

// SecurityHeadersMiddleware sets the fixed response hardening headers
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k, v := range securityHeaders {
			h.Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}
