package discord

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/PixelPet_Go/internal/game"
)

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

func TestBotHealth_CountsHandledCommands(t *testing.T) {
	calls := 0
	registry := NewCommandRegistry()
	registry.Register(&discordgo.ApplicationCommand{Name: "poke"}, func(*discordgo.Session, *discordgo.InteractionCreate, game.Service) {
		calls++
	})
	b := &Bot{Registry: registry, stats: commandStats{started: time.Now()}}

	assert.True(t, b.Health().LastCommandTime.IsZero())

	b.onInteraction(nil, commandInteraction("poke"))
	b.onInteraction(nil, commandInteraction("unknown"))
	b.onInteraction(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing}})

	h := b.Health()
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(1), h.CommandsReceived)
	assert.False(t, h.LastCommandTime.IsZero())
	assert.False(t, h.Connected)
	assert.Equal(t, StatusDegraded, h.Status)
}

func TestBotCheckHealth_NotConnected(t *testing.T) {
	b := &Bot{}
	assert.ErrorIs(t, b.CheckHealth(context.Background()), ErrNotConnected)

	b.Session = &discordgo.Session{DataReady: true}
	assert.NoError(t, b.CheckHealth(context.Background()))
	assert.Equal(t, StatusHealthy, b.Health().Status)
}

func TestNew_RequiresToken(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.EqualError(t, err, ErrMsgMissingToken)
}
