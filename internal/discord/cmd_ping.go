package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PixelPet_Go/internal/game"
)

// PingCommand reports gateway latency and whether a wallet is connected
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandPing,
		Description: "Check the bot and the pet connection",
	}

	return cmd, func(s *discordgo.Session, i *discordgo.InteractionCreate, svc game.Service) {
		handleEmbedResponse(s, i, "🏓 Pong", ColorInfo, func() (string, error) {
			return formatPing(s.HeartbeatLatency(), svc.Snapshot()), nil
		})
	}
}

func formatPing(latency time.Duration, snap game.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Gateway latency: **%s**\n", latency.Round(time.Millisecond))
	if !snap.Connected {
		sb.WriteString("Wallet: not connected")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Wallet: `%s`", snap.Identity)
	if snap.IsLoading {
		sb.WriteString("\n⏳ An action is in progress")
	}
	return sb.String()
}
