package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/PixelPet_Go/internal/bootstrap"
	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/config"
	"github.com/osse101/PixelPet_Go/internal/discord"
	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/handler"
	"github.com/osse101/PixelPet_Go/internal/mood"
	"github.com/osse101/PixelPet_Go/internal/server"
	"github.com/osse101/PixelPet_Go/internal/sse"
	"github.com/osse101/PixelPet_Go/internal/utils"
	"github.com/osse101/PixelPet_Go/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	exitOnError("failed to load config", err)
	exitOnError("invalid config", cfg.Validate())

	closeLog, err := initLogger(cfg)
	exitOnError("failed to initialize logger", err)
	defer closeLog()

	for _, warning := range cfg.Warnings() {
		slog.Warn("Configuration warning", "detail", warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("PixelPet exited with error", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	clk := clock.Real{}
	rng := utils.DefaultSource()

	storage, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return err
	}
	petClient, petCheck := bootstrap.BuildPetClient(cfg, clk)

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		_ = storage.Close()
		return err
	}

	moodScheduler := mood.NewScheduler(storage.Store, clk, rng, events.Publisher)
	gameCfg := game.DefaultConfig()
	gameCfg.AllowEarlyClaim = cfg.AllowEarlyClaim
	gameService := game.NewService(game.Deps{
		Client:    petClient,
		Store:     storage.Store,
		Mood:      moodScheduler,
		Publisher: events.Publisher,
		Clock:     clk,
		Rand:      rng,
	}, gameCfg)

	hub := sse.NewHub()
	syncWorker := worker.NewSyncWorker(gameService, cfg.SyncInterval, clk)
	moodWorker := worker.NewMoodWorker(moodScheduler, clk)
	investmentWorker := worker.NewInvestmentWorker(gameService, events.Publisher, clk)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:         events.Bus,
		Hub:              hub,
		MoodWorker:       moodWorker,
		InvestmentWorker: investmentWorker,
	}); err != nil {
		return err
	}

	if err := gameService.Hydrate(ctx); err != nil {
		slog.Warn("Starting with default state", "error", err)
	}

	hub.Start()
	syncWorker.Start()
	moodWorker.Start()
	investmentWorker.Start()

	checks := map[string]handler.HealthChecker{}
	for name, check := range storage.Checks {
		checks[name] = check
	}
	if petCheck != nil {
		checks[bootstrap.ReadinessPetService] = petCheck
	}

	var bot *discord.Bot
	if cfg.DiscordEnabled() {
		bot, err = discord.New(discord.Config{
			Token:     cfg.DiscordToken,
			AppID:     cfg.DiscordAppID,
			ChannelID: cfg.DiscordChannelID,
		}, gameService)
		if err == nil {
			err = bot.Start(events.Bus)
		}
		if err != nil {
			slog.Error("Discord bot disabled", "error", err)
			bot = nil
		} else {
			checks["discord"] = bot
		}
	}

	srv := server.NewServer(server.Options{
		Port:             cfg.Port,
		APIKey:           cfg.APIKey,
		ServiceName:      cfg.ServiceName,
		TrustedProxies:   cfg.TrustedProxies,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
		WSOriginPatterns: cfg.WSOriginPatterns,
		ReadinessChecks:  checks,
	}, gameService, hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		err = nil
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:           srv,
		SyncWorker:       syncWorker,
		MoodWorker:       moodWorker,
		InvestmentWorker: investmentWorker,
		Bot:              bot,
		Game:             gameService,
		Events:           events,
		Hub:              hub,
		Storage:          storage,
	})
	return err
}
