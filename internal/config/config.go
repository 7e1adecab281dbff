package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string
	APIKey      string // API key for authentication

	// Local store
	StoreBackend   string
	StoreDir       string
	StoreCacheSize int
	StoreCacheTTL  time.Duration

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Remote pet service; empty URL runs the in-process simulator
	PetServiceURL      string
	PetServiceTimeout  time.Duration
	PetServiceAttempts int
	PetNodePort        int
	PetDecayInterval   time.Duration

	SyncInterval    time.Duration
	AllowEarlyClaim bool

	DiscordToken     string
	DiscordAppID     string
	DiscordChannelID string

	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string

	// WebSocket origin patterns accepted besides the request host
	WSOriginPatterns []string

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine; the real environment still applies
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		ServiceName: getEnv("SERVICE_NAME", "pixel-pet"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		APIKey:      getEnv("API_KEY", ""),

		StoreBackend:   getEnv("STORE_BACKEND", DefaultStoreBackend),
		StoreDir:       getEnv("STORE_DIR", DefaultStoreDir),
		StoreCacheSize: getEnvAsInt("STORE_CACHE_SIZE", DefaultStoreCacheSize),
		StoreCacheTTL:  getEnvAsDuration("STORE_CACHE_TTL", 5*time.Minute),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "pixelpet"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		RedisAddr:     getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		PetServiceURL:      getEnv("PET_SERVICE_URL", ""),
		PetServiceTimeout:  getEnvAsDuration("PET_SERVICE_TIMEOUT", 10*time.Second),
		PetServiceAttempts: getEnvAsInt("PET_SERVICE_ATTEMPTS", DefaultPetServiceAttempts),
		PetNodePort:        getEnvAsInt("PETNODE_PORT", DefaultPetNodePort),
		PetDecayInterval:   getEnvAsDuration("PET_DECAY_INTERVAL", time.Minute),

		SyncInterval:    getEnvAsDuration("SYNC_INTERVAL", 30*time.Second),
		AllowEarlyClaim: getEnvAsBool("INVESTMENT_ALLOW_EARLY_CLAIM", DefaultAllowEarlyClaim),

		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:     getEnv("DISCORD_APP_ID", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", DefaultRateLimitRPS),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		WSOriginPatterns: getEnvAsList("WS_ORIGIN_PATTERNS"),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 0),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 0),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY must be set")
	}

	return cfg, nil
}

// Validate checks cross-field consistency that Load cannot express through defaults
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	switch c.StoreBackend {
	case StoreBackendMemory:
	case StoreBackendFile:
		if c.StoreDir == "" {
			return fmt.Errorf("STORE_DIR must be set for the %s store backend", c.StoreBackend)
		}
	case StoreBackendPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME must be set for the %s store backend", c.StoreBackend)
		}
	case StoreBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must be set for the %s store backend", c.StoreBackend)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.SyncInterval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be positive, got %s", c.SyncInterval)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.PetServiceAttempts < 1 {
		return fmt.Errorf("PET_SERVICE_ATTEMPTS must be at least 1, got %d", c.PetServiceAttempts)
	}
	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return fmt.Errorf("DISCORD_TOKEN and DISCORD_CHANNEL_ID must be set together")
	}

	return nil
}

// DiscordEnabled reports whether notifications should be relayed to Discord
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL URL with credentials escaped
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
