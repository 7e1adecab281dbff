package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/investment"
)

// Friendly message constants for Discord responses
const (
	MsgNotConnected      = "🔌 **Not Connected**\nConnect a wallet in the app first."
	MsgNoPet             = "🥚 **No Pet Yet**\nCreate your pet in the app first."
	MsgBusyOrUnwell      = "⏳ **Hold on!**\nYour pet is busy or unwell."
	MsgInsufficientFunds = "⚠️ **Not Enough Coins!**\nYou don't have enough coins for that."
	MsgInvestmentRunning = "📈 **Already Investing**\nClaim your current investment first."
	MsgNoInvestment      = "📉 **No Investment**\nStart one with `/invest start`."
	MsgNotMatured        = "⏳ **Not Ready Yet**\nYour investment is still growing."
	MsgServiceDown       = "📡 **Pet Service Unavailable**\nPlease try again later."
	MsgAccessoryOwned    = "😎 **Already Owned**\nYour pet already has those glasses."
	MsgPetDead           = "🪦 **Your pet has passed away**"
	MsgGenericError      = "❌ Something went wrong."
)

// formatFriendlyError maps service errors to messages a player can act on
func formatFriendlyError(err error) string {
	switch {
	case err == nil:
		return MsgGenericError
	case errors.Is(err, domain.ErrNotConnected):
		return MsgNotConnected
	case errors.Is(err, domain.ErrNoPet):
		return MsgNoPet
	case errors.Is(err, domain.ErrActionInProgress), errors.Is(err, domain.ErrPetUnwell), errors.Is(err, domain.ErrNotEnoughEnergy):
		return MsgBusyOrUnwell
	case errors.Is(err, domain.ErrInsufficientCoins):
		return MsgInsufficientFunds
	case errors.Is(err, domain.ErrInvestmentActive):
		return MsgInvestmentRunning
	case errors.Is(err, domain.ErrNoActiveInvestment):
		return MsgNoInvestment
	case errors.Is(err, domain.ErrInvestmentNotMatured):
		return MsgNotMatured
	case errors.Is(err, domain.ErrAccessoryOwned):
		return MsgAccessoryOwned
	case errors.Is(err, domain.ErrPetDead):
		return MsgPetDead
	case errors.Is(err, domain.ErrRemoteUnavailable), errors.Is(err, domain.ErrSettlementFailed):
		return MsgServiceDown
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidAction):
		return "❌ " + err.Error()
	default:
		return MsgGenericError
	}
}

// formatPetStatus renders a snapshot as embed text
func formatPetStatus(snap game.Snapshot) string {
	if !snap.Connected {
		return MsgNotConnected
	}
	g := snap.Game
	if !g.HasRealPet {
		return MsgNoPet
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** is feeling **%s**\n", g.PetName, g.PetMood)
	fmt.Fprintf(&sb, "Level %d · XP %d/%d\n", g.Stats.Level, g.Stats.XP, g.Stats.NextLevelXP)
	fmt.Fprintf(&sb, "🍖 %d  😊 %d  ⚡ %d\n", g.Stats.Hunger, g.Stats.Happy, g.Stats.Energy)
	fmt.Fprintf(&sb, "🪙 %d coins", g.Coins)
	if g.IsSleeping {
		sb.WriteString("\n💤 Sleeping")
	}
	if snap.Mood.MoodType != "" {
		fmt.Fprintf(&sb, "\nMood of the day: %s", snap.Mood.Message)
	}
	return sb.String()
}

// formatInvestmentStatus renders investment progress, or the empty-state message
func formatInvestmentStatus(status *investment.Status) string {
	if status == nil {
		return MsgNoInvestment
	}
	inv := status.Investment
	if status.Claimable {
		return fmt.Sprintf("🪙 %d coins for %dh\n✅ Ready to claim!", inv.Amount, inv.DurationHours)
	}
	return fmt.Sprintf("🪙 %d coins for %dh\n%s %d%%\n⏳ %s left",
		inv.Amount, inv.DurationHours, progressBar(status.Progress), int(status.Progress*100), status.RemainingText)
}

const progressBarWidth = 10

func progressBar(progress float64) string {
	filled := int(progress * progressBarWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", progressBarWidth-filled)
}
