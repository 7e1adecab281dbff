package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/game"
)

// careActions are the actions reachable from Discord; play needs the in-app challenge
var careActions = []domain.ActionKind{
	domain.ActionFeed,
	domain.ActionWork,
	domain.ActionSleep,
	domain.ActionExercise,
}

// PetCommand returns the /pet command definition and handler
func PetCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(careActions))
	for _, kind := range careActions {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  displayAction(kind),
			Value: string(kind),
		})
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        CommandPet,
		Description: "Check on and care for your pet",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandStatus,
				Description: "Show your pet's stats",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandCare,
				Description: "Perform a care action",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        OptionAction,
						Description: "What to do",
						Required:    true,
						Choices:     choices,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandGlasses,
				Description: "Buy the cool glasses",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc game.Service) {
		name, opts := subcommand(i)
		ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
		defer cancel()

		switch name {
		case SubcommandStatus:
			handleEmbedResponse(s, i, "🐾 Your Pet", ColorInfo, func() (string, error) {
				return formatPetStatus(svc.Snapshot()), nil
			})
		case SubcommandCare:
			kind := domain.ActionKind(opts[OptionAction].StringValue())
			handleEmbedResponse(s, i, displayAction(kind), ColorSuccess, func() (string, error) {
				return runCare(ctx, svc, kind)
			})
		case SubcommandGlasses:
			handleEmbedResponse(s, i, "😎 Cool Glasses", ColorGold, func() (string, error) {
				if _, err := svc.MintGlasses(ctx); err != nil {
					return "", err
				}
				return formatPetStatus(svc.Snapshot()), nil
			})
		}
	}

	return cmd, handler
}

func runCare(ctx context.Context, svc game.Service, kind domain.ActionKind) (string, error) {
	if kind == domain.ActionPlay {
		return "", fmt.Errorf("%w: play through the challenge in the app", domain.ErrInvalidAction)
	}
	if _, err := svc.PerformAction(ctx, kind); err != nil {
		return "", err
	}
	return formatPetStatus(svc.Snapshot()), nil
}

func displayAction(kind domain.ActionKind) string {
	switch kind {
	case domain.ActionFeed:
		return "🍖 Feed"
	case domain.ActionWork:
		return "💼 Work"
	case domain.ActionSleep:
		return "💤 Sleep"
	case domain.ActionExercise:
		return "🏃 Exercise"
	default:
		return string(kind)
	}
}
