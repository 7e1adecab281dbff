package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/config"
	"github.com/osse101/PixelPet_Go/internal/petservice"
	"github.com/osse101/PixelPet_Go/internal/sse"
	"github.com/osse101/PixelPet_Go/internal/worker"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		StoreBackend:        config.StoreBackendMemory,
		StoreDir:            filepath.Join(dir, "data"),
		StoreCacheSize:      8,
		StoreCacheTTL:       time.Minute,
		PetDecayInterval:    time.Minute,
		PetServiceTimeout:   time.Second,
		EventDeadLetterPath: filepath.Join(dir, "events", "deadletter.jsonl"),
	}
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2024-01-01_00-00-00.log",
		"session_2024-01-02_00-00-00.log",
		"session_2024-01-03_00-00-00.log",
		"notes.txt",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, LogFilePermission))
	}

	pruneSessionLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"session_2024-01-02_00-00-00.log",
		"session_2024-01-03_00-00-00.log",
		"notes.txt",
	}, left)
}

func TestBuildStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		st, err := BuildStore(ctx, testConfig(t))
		require.NoError(t, err)
		defer st.Close()

		require.NoError(t, st.Store.Set(ctx, "k", []byte("v")))
		got, err := st.Store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)

		require.Contains(t, st.Checks, ReadinessStore)
		assert.NoError(t, st.Checks[ReadinessStore].CheckHealth(ctx), "missing probe key is healthy")
	})

	t.Run("file", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StoreBackend = config.StoreBackendFile
		st, err := BuildStore(ctx, cfg)
		require.NoError(t, err)
		require.NoError(t, st.Store.Set(ctx, "k", []byte("v")))
		assert.DirExists(t, cfg.StoreDir)
		assert.NoError(t, st.Close())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StoreBackend = "etcd"
		_, err := BuildStore(ctx, cfg)
		assert.ErrorContains(t, err, ErrMsgUnknownStoreBackend)
	})
}

func TestBuildPetClient(t *testing.T) {
	cfg := testConfig(t)
	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	client, check := BuildPetClient(cfg, clk)
	assert.IsType(t, &petservice.Simulator{}, client)
	assert.Nil(t, check)

	cfg.PetServiceURL = "http://pets.local/"
	cfg.PetServiceAttempts = 7
	client, check = BuildPetClient(cfg, clk)
	httpClient, ok := client.(*petservice.HTTPClient)
	require.True(t, ok)
	assert.Equal(t, "http://pets.local", httpClient.BaseURL)
	assert.Equal(t, 7, httpClient.MaxRetries)
	assert.NotNil(t, check)
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := testConfig(t)
	events, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Dir(cfg.EventDeadLetterPath))
	assert.NotNil(t, events.Bus)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, events.Shutdown(ctx))
}

func TestRetryPolicyFrom(t *testing.T) {
	policy := retryPolicyFrom(&config.Config{EventMaxRetries: -3})
	assert.Equal(t, EventDefaultMaxRetries, policy.attempts)
	assert.Equal(t, EventDefaultRetryDelay, policy.baseDelay)
	assert.Equal(t, EventDefaultDeadLetterPath, policy.deadLetter)

	policy = retryPolicyFrom(&config.Config{
		EventMaxRetries:     2,
		EventRetryDelay:     time.Second,
		EventDeadLetterPath: "tmp/dl.jsonl",
	})
	assert.Equal(t, retryPolicy{attempts: 2, baseDelay: time.Second, deadLetter: "tmp/dl.jsonl"}, policy)
}

func TestRegisterEventHandlersAndShutdown(t *testing.T) {
	cfg := testConfig(t)
	events, err := InitializeEventSystem(cfg)
	require.NoError(t, err)

	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	hub := sse.NewHub()
	hub.Start()
	syncWorker := worker.NewSyncWorker(syncerFunc(func(context.Context) error { return nil }), time.Minute, clk)
	syncWorker.Start()

	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{
		EventBus: events.Bus,
		Hub:      hub,
	}))

	st, err := BuildStore(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	GracefulShutdown(ctx, ShutdownComponents{
		SyncWorker: syncWorker,
		Events:     events,
		Hub:        hub,
		Storage:    st,
	})
	assert.Zero(t, clk.Pending(), "sync timer cancelled")
}

type syncerFunc func(context.Context) error

func (f syncerFunc) Sync(ctx context.Context) error { return f(ctx) }
