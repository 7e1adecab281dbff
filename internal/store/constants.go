package store

import "time"

// Error contexts
const (
	ErrContextGet    = "failed to read key"
	ErrContextSet    = "failed to write key"
	ErrContextRemove = "failed to remove key"
	ErrContextDecode = "failed to decode key"
	ErrContextEncode = "failed to encode key"
)

// Log messages
const (
	LogMsgStoreOpened     = "Store opened"
	LogMsgCacheHit        = "Store cache hit"
	LogMsgCacheInvalidate = "Store cache entry invalidated"
)

// File store settings
const (
	FileStoreDirPermissions  = 0o755
	FileStoreFilePermissions = 0o600
	FileStoreExtension       = ".json"
)

// Redis settings
const (
	DefaultRedisKeyPrefix = "pixelpet:"
	RedisPingTimeout      = 5 * time.Second
)
