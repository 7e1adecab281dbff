package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/investment"
)

// InvestCommand returns the /invest command definition and handler
func InvestCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minAmount := float64(1)

	// Durations follow the presets offered in the app
	hourChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(investment.Options))
	for _, opt := range investment.Options {
		hourChoices = append(hourChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%d hours", opt.DurationHours),
			Value: opt.DurationHours,
		})
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        CommandInvest,
		Description: "Lock up coins for a chance at a bigger payout",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandStatus,
				Description: "Show your active investment",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandStart,
				Description: "Start an investment",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        OptionAmount,
						Description: "Coins to invest",
						Required:    true,
						MinValue:    &minAmount,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        OptionHours,
						Description: "How long to lock the coins",
						Required:    true,
						Choices:     hourChoices,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandClaim,
				Description: "Claim your investment",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc game.Service) {
		name, opts := subcommand(i)
		ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
		defer cancel()

		switch name {
		case SubcommandStatus:
			handleEmbedResponse(s, i, "📈 Investment", ColorInfo, func() (string, error) {
				return formatInvestmentStatus(svc.InvestmentStatus()), nil
			})
		case SubcommandStart:
			amount := opts[OptionAmount].IntValue()
			hours := int(opts[OptionHours].IntValue())
			handleEmbedResponse(s, i, "📈 Investment Started", ColorSuccess, func() (string, error) {
				if _, err := svc.StartInvestment(ctx, amount, hours); err != nil {
					return "", err
				}
				return formatInvestmentStatus(svc.InvestmentStatus()), nil
			})
		case SubcommandClaim:
			handleEmbedResponse(s, i, "💰 Investment Claimed", ColorGold, func() (string, error) {
				return runClaim(ctx, svc)
			})
		}
	}

	return cmd, handler
}

func runClaim(ctx context.Context, svc game.Service) (string, error) {
	result, err := svc.ClaimInvestment(ctx)
	if err != nil {
		return "", err
	}
	return result.Message, nil
}
