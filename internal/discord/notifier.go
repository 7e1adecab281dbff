package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
	"github.com/osse101/PixelPet_Go/internal/logger"
	"github.com/osse101/PixelPet_Go/internal/worker"
)

// MessageSender is the slice of *discordgo.Session the relay needs
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier relays player notifications to a Discord channel.
// Sends run on a worker pool; a full queue drops the notification.
type Notifier struct {
	sender    MessageSender
	channelID string
	pool      *worker.Pool
}

// NewNotifier creates a notifier; call Start before subscribing
func NewNotifier(sender MessageSender, channelID string) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
		pool:      worker.NewPool(RelayWorkers, RelayQueueSize),
	}
}

// Start launches the send workers
func (n *Notifier) Start() {
	n.pool.Start()
}

// Stop waits for queued sends to finish
func (n *Notifier) Stop() {
	n.pool.Stop()
}

// Subscribe relays every notification published on bus
func (n *Notifier) Subscribe(bus event.Bus) {
	bus.Subscribe(event.Notification, n.handleNotification)
}

func (n *Notifier) handleNotification(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	note, err := event.DecodePayload[domain.Notification](evt.Payload)
	if err != nil {
		log.Warn(LogMsgUnexpectedPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	// Loading toasts are transient UI state
	if note.Level == domain.NotificationLoading || n.channelID == "" {
		return nil
	}

	embed := notificationEmbed(note)
	queued := n.pool.TrySubmit(worker.JobFunc(func(context.Context) error {
		if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
			log.Error(LogMsgNotificationError, "error", err, "notification_id", note.ID)
			return err
		}
		log.Debug(LogMsgNotificationSent, "notification_id", note.ID, "level", note.Level)
		return nil
	}))
	if !queued {
		log.Warn(LogMsgNotificationDropped, "notification_id", note.ID)
	}
	return nil
}

func notificationEmbed(note domain.Notification) *discordgo.MessageEmbed {
	title, color := "ℹ️ PixelPet", ColorInfo
	switch note.Level {
	case domain.NotificationSuccess:
		title, color = "✅ Success", ColorSuccess
	case domain.NotificationError:
		title, color = "❌ Oops", ColorError
	}
	embed := createEmbed(title, note.Message, color)
	embed.Timestamp = note.CreatedAt.Format(time.RFC3339)
	return embed
}

func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterPixelPet,
		},
	}
}
