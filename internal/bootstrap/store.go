package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/PixelPet_Go/internal/config"
	"github.com/osse101/PixelPet_Go/internal/database"
	"github.com/osse101/PixelPet_Go/internal/handler"
	"github.com/osse101/PixelPet_Go/internal/store"
)

// Storage is the local store chosen by configuration, with its readiness checks and closer
type Storage struct {
	Store  store.Store
	Checks map[string]handler.HealthChecker
	close  func() error
}

// Close releases the backend's connections. Safe to call on backends without any.
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// BuildStore opens the configured backend and fronts it with an LRU read cache
func BuildStore(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var (
		backend store.Store
		out     = &Storage{Checks: map[string]handler.HealthChecker{}}
	)

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		backend = store.NewMemoryStore()

	case config.StoreBackendFile:
		fileStore, err := store.NewFileStore(cfg.StoreDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		backend = fileStore

	case config.StoreBackendPostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString:      cfg.GetDBConnString(),
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
		backend = store.NewPostgresStore(pool)
		out.Checks[ReadinessDatabase] = handler.HealthCheckFunc(pool.Ping)
		out.close = func() error {
			pool.Close()
			return nil
		}

	case config.StoreBackendRedis:
		rs, err := store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		backend = rs
		out.close = rs.Close

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStoreBackend, cfg.StoreBackend)
	}

	out.Store = store.NewCachedStore(backend, cfg.StoreCacheSize, cfg.StoreCacheTTL)
	// The probe bypasses the cache.
	out.Checks[ReadinessStore] = storeProbe(backend)

	slog.Info(LogMsgStoreInitialized,
		"backend", cfg.StoreBackend,
		"cache_size", cfg.StoreCacheSize,
		"cache_ttl", cfg.StoreCacheTTL)
	return out, nil
}

func storeProbe(s store.Store) handler.HealthChecker {
	return handler.HealthCheckFunc(func(ctx context.Context) error {
		_, err := s.Get(ctx, StoreProbeKey)
		if err == nil || errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	})
}
