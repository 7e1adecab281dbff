package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alerts
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertThrottled  = "⚠️ SECURITY ALERT: Client repeatedly rate limited"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgRateLimited      = "Request rate limited"
	LogMsgBadTrustedProxy  = "Ignoring unparseable trusted proxy"
)

// HTTP header names
const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderForwardedFor  = "X-Forwarded-For"
	HeaderRequestID     = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"
)

// QueryParamAPIKey carries the key on stream paths, where EventSource and WebSocket clients cannot set headers
const QueryParamAPIKey = "api_key"

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// StreamPaths accept the API key as a query parameter
var StreamPaths = []string{
	"/api/v1/events",
	"/api/v1/ws",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

// Limits and windows
const (
	MaxRequestBodyBytes    = 1 << 20
	ReadHeaderTimeout      = 5 * time.Second
	FailedAuthThreshold    = 5
	ThrottleAlertThreshold = 50
	SecurityWindow         = 5 * time.Minute
	TrackedClients         = 4096
	RateLimiterIdleTTL     = 10 * time.Minute
	RetryAfterSeconds      = "1"
)
