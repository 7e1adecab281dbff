package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR",
	"SERVICE_NAME", "VERSION", "ENVIRONMENT",
	"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
	"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
	"STORE_BACKEND", "STORE_DIR", "STORE_CACHE_SIZE", "STORE_CACHE_TTL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"PET_SERVICE_URL", "PET_SERVICE_TIMEOUT", "PET_SERVICE_ATTEMPTS", "PETNODE_PORT", "PET_DECAY_INTERVAL",
	"SYNC_INTERVAL", "INVESTMENT_ALLOW_EARLY_CLAIM",
	"DISCORD_TOKEN", "DISCORD_APP_ID", "DISCORD_CHANNEL_ID",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "TRUSTED_PROXIES", "WS_ORIGIN_PATTERNS",
	"EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY", "EVENT_DEADLETTER_PATH",
}

// clearEnvVars unsets every variable Load reads; t.Setenv restores them afterwards
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, StoreBackendFile, cfg.StoreBackend)
	assert.Equal(t, DefaultStoreDir, cfg.StoreDir)
	assert.Equal(t, DefaultStoreCacheSize, cfg.StoreCacheSize)
	assert.Equal(t, 5*time.Minute, cfg.StoreCacheTTL)
	assert.Empty(t, cfg.PetServiceURL, "empty URL selects the simulator")
	assert.Equal(t, DefaultPetServiceAttempts, cfg.PetServiceAttempts)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.True(t, cfg.AllowEarlyClaim)
	assert.Equal(t, DefaultRateLimitRPS, cfg.RateLimitRPS)
	assert.Equal(t, DefaultRateLimitBurst, cfg.RateLimitBurst)
	assert.Nil(t, cfg.TrustedProxies)
	assert.False(t, cfg.DiscordEnabled())
	assert.Zero(t, cfg.EventMaxRetries, "zero lets bootstrap pick its default")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnvVars(t)
	for k, v := range map[string]string{
		"API_KEY":                      "key",
		"PORT":                         "3000",
		"LOG_FORMAT":                   "json",
		"STORE_BACKEND":                "redis",
		"REDIS_ADDR":                   "cache:6379",
		"REDIS_DB":                     "2",
		"PET_SERVICE_URL":              "http://petnode:8090",
		"PET_SERVICE_ATTEMPTS":         "5",
		"SYNC_INTERVAL":                "1m",
		"INVESTMENT_ALLOW_EARLY_CLAIM": "false",
		"DISCORD_TOKEN":                "token",
		"DISCORD_CHANNEL_ID":           "123",
		"TRUSTED_PROXIES":              "10.0.0.1, 10.0.0.0/8",
		"EVENT_MAX_RETRIES":            "7",
		"EVENT_RETRY_DELAY":            "250ms",
	} {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, StoreBackendRedis, cfg.StoreBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "http://petnode:8090", cfg.PetServiceURL)
	assert.Equal(t, 5, cfg.PetServiceAttempts)
	assert.Equal(t, time.Minute, cfg.SyncInterval)
	assert.False(t, cfg.AllowEarlyClaim)
	assert.True(t, cfg.DiscordEnabled())
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.0/8"}, cfg.TrustedProxies)
	assert.Equal(t, 7, cfg.EventMaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.EventRetryDelay)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		clearEnvVars(t)
		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "API_KEY")
	})

	for _, port := range []string{"http", "8080.5"} {
		t.Run("port "+port, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("API_KEY", "key")
			t.Setenv("PORT", port)
			_, err := Load()
			assert.ErrorContains(t, err, "invalid PORT")
		})
	}

	t.Run("out of range port loads but fails validation", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "key")
		t.Setenv("PORT", "65536")
		cfg, err := Load()
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "PORT")
	})
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{DBUser: "pet", DBPassword: "secret", DBHost: "db", DBPort: "5433", DBName: "pixelpet"}
	assert.Equal(t, "postgres://pet:secret@db:5433/pixelpet?sslmode=disable", cfg.GetDBConnString())

	cfg.DBPassword = "p@ss:word/with?odd#chars"
	assert.Equal(t, "postgres://pet:p%40ss%3Aword%2Fwith%3Fodd%23chars@db:5433/pixelpet?sslmode=disable", cfg.GetDBConnString())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:               8080,
			StoreBackend:       StoreBackendFile,
			StoreDir:           "data",
			SyncInterval:       30 * time.Second,
			RateLimitRPS:       20,
			RateLimitBurst:     40,
			PetServiceAttempts: 3,
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"port out of range", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"unknown backend", func(c *Config) { c.StoreBackend = "etcd" }, "unknown STORE_BACKEND"},
		{"file without dir", func(c *Config) { c.StoreDir = "" }, "STORE_DIR"},
		{"redis without addr", func(c *Config) { c.StoreBackend = StoreBackendRedis }, "REDIS_ADDR"},
		{"postgres without host", func(c *Config) { c.StoreBackend = StoreBackendPostgres; c.DBName = "x" }, "DB_HOST"},
		{"zero sync interval", func(c *Config) { c.SyncInterval = 0 }, "SYNC_INTERVAL"},
		{"zero rate limit", func(c *Config) { c.RateLimitBurst = 0 }, "RATE_LIMIT"},
		{"zero attempts", func(c *Config) { c.PetServiceAttempts = 0 }, "PET_SERVICE_ATTEMPTS"},
		{"discord token only", func(c *Config) { c.DiscordToken = "t" }, "DISCORD_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
