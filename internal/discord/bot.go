package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/game"
)

// Config holds the bot credentials and the channel notifications are relayed to
type Config struct {
	Token     string
	AppID     string
	ChannelID string
}

// Bot relays notifications to a channel and answers pet slash commands
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	Registry *CommandRegistry
	Notifier *Notifier

	game  game.Service
	stats commandStats
}

func New(cfg Config, svc game.Service) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New(ErrMsgMissingToken)
	}
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateSession, err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		Session:  session,
		AppID:    cfg.AppID,
		Registry: DefaultRegistry(),
		Notifier: NewNotifier(session, cfg.ChannelID),
		game:     svc,
		stats:    commandStats{started: time.Now()},
	}, nil
}

// Start opens the gateway, starts the notification relay on bus and syncs slash commands.
// A command sync failure is logged and does not stop the bot.
func (b *Bot) Start(bus event.Bus) error {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info(LogMsgBotReady, "user", r.User.Username, "guilds", len(r.Guilds))
	})
	b.Session.AddHandler(b.onInteraction)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgOpenGateway, err)
	}

	b.Notifier.Start()
	b.Notifier.Subscribe(bus)

	if b.AppID == "" {
		slog.Warn(LogMsgCommandsSkipped)
	} else if err := b.RegisterCommands(false); err != nil {
		slog.Warn(LogMsgCommandFailed, "command", "register", "error", err)
	}

	slog.Info(LogMsgBotRunning, "commands", len(b.Registry.Commands))
	return nil
}

// Stop drains queued notifications and closes the session
func (b *Bot) Stop() error {
	b.Notifier.Stop()
	return b.Session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry == nil {
		return
	}
	if b.Registry.Handle(s, i, b.game) {
		b.stats.record(time.Now())
	}
}
