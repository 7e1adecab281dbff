package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/PixelPet_Go/internal/discord"
	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/server"
	"github.com/osse101/PixelPet_Go/internal/sse"
	"github.com/osse101/PixelPet_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server           *server.Server
	SyncWorker       *worker.SyncWorker
	MoodWorker       *worker.MoodWorker
	InvestmentWorker *worker.InvestmentWorker
	Bot              *discord.Bot
	Game             game.Service
	Events           *EventSystem
	Hub              *sse.Hub
	Storage          *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Workers (cancel pending timers)
// 3. Discord bot (stop accepting commands)
// 4. Game service (cancel the challenge, flush state)
// 5. Event publisher (flush pending events), then the SSE hub
// 6. Store connections
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.SyncWorker != nil {
		shutdownComponent(ctx, ComponentSyncWorker, c.SyncWorker)
	}
	if c.MoodWorker != nil {
		shutdownComponent(ctx, ComponentMoodWorker, c.MoodWorker)
	}
	if c.InvestmentWorker != nil {
		shutdownComponent(ctx, ComponentInvestmentWorker, c.InvestmentWorker)
	}

	if c.Bot != nil {
		if err := c.Bot.Stop(); err != nil {
			slog.Error(LogMsgDiscordStopFailed, "error", err)
		}
	}

	if c.Game != nil {
		shutdownComponent(ctx, ComponentGame, c.Game)
	}

	if c.Events != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.Events.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownable interface {
	Shutdown(context.Context) error
}

func shutdownComponent(ctx context.Context, name string, component shutdownable) {
	if err := component.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgComponentShutdownFailed, "error", err)
	}
}
