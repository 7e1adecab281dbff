package config

// Store backends
const (
	StoreBackendMemory   = "memory"
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
)

// Environments
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
)

// Defaults
const (
	DefaultPort               = "8080"
	DefaultPetNodePort        = 8090
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultEnvironment        = EnvironmentDev
	DefaultLogDir             = "logs"
	DefaultStoreBackend       = StoreBackendFile
	DefaultStoreDir           = "data"
	DefaultStoreCacheSize     = 64
	DefaultDBMaxConns         = 20
	DefaultRedisAddr          = "localhost:6379"
	DefaultRateLimitRPS       = 20.0
	DefaultRateLimitBurst     = 40
	DefaultAllowEarlyClaim    = true
	DefaultPetServiceAttempts = 3
)
