package discord

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PixelPet_Go/internal/game"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, svc game.Service)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// DefaultRegistry registers every pet command
func DefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	r.Register(PingCommand())
	r.Register(PetCommand())
	r.Register(InvestCommand())
	return r
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle dispatches an application command interaction and reports whether a handler ran
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, svc game.Service) bool {
	if i.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	h, ok := r.Handlers[i.ApplicationCommandData().Name]
	if ok {
		h(s, i, svc)
	}
	return ok
}

// RegisterCommands publishes the registry as global commands. Unless force is set the
// bulk overwrite is skipped when Discord already has an identical set.
func (b *Bot) RegisterCommands(force bool) error {
	slog.Info(LogMsgCommandsChecking)

	existing, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("fetch registered commands: %w", err)
	}

	desired := make([]*discordgo.ApplicationCommand, 0, len(b.Registry.Commands))
	for _, cmd := range b.Registry.Commands {
		desired = append(desired, cmd)
	}
	if !force && commandsEqual(existing, desired) {
		slog.Info(LogMsgCommandsUnchanged, "count", len(existing))
		return nil
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desired); err != nil {
		return fmt.Errorf("overwrite commands: %w", err)
	}
	slog.Info(LogMsgCommandsUpdated, "count", len(desired), "forced", force)
	return nil
}

// commandsEqual compares the fields users see. IDs and versions assigned by Discord are ignored.
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	return maps.Equal(signatures(existing), signatures(desired))
}

func signatures(cmds []*discordgo.ApplicationCommand) map[string]string {
	out := make(map[string]string, len(cmds))
	for _, c := range cmds {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s|%s", c.Name, c.Description)
		writeOptions(&sb, c.Options)
		out[c.Name] = sb.String()
	}
	return out
}

// writeOptions flattens options depth-first. Choice values go through %v so 4 and 4.0 match.
func writeOptions(sb *strings.Builder, opts []*discordgo.ApplicationCommandOption) {
	sb.WriteByte('(')
	for _, o := range opts {
		fmt.Fprintf(sb, "[%d|%s|%s|%t", o.Type, o.Name, o.Description, o.Required)
		for _, ch := range o.Choices {
			fmt.Fprintf(sb, "{%s=%v}", ch.Name, ch.Value)
		}
		writeOptions(sb, o.Options)
		sb.WriteByte(']')
	}
	sb.WriteByte(')')
}

// deferResponse acknowledges the interaction; the result follows as an edit
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
		return false
	}
	return true
}

// subcommand returns the invoked subcommand and its options
func subcommand(i *discordgo.InteractionCreate) (string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	opts := i.ApplicationCommandData().Options
	if len(opts) == 0 {
		return "", nil
	}
	sub := opts[0]
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, o := range sub.Options {
		byName[o.Name] = o
	}
	return sub.Name, byName
}

// respondError edits the deferred response with a plain message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

// handleEmbedResponse defers, runs action, and reports either the friendly error or the result embed
func handleEmbedResponse(s *discordgo.Session, i *discordgo.InteractionCreate, title string, color int, action func() (string, error)) {
	if !deferResponse(s, i) {
		return
	}

	msg, err := action()
	if err != nil {
		slog.Error(LogMsgCommandFailed, "title", title, "error", err)
		respondError(s, i, formatFriendlyError(err))
		return
	}

	sendEmbed(s, i, createEmbed(title, msg, color))
}
