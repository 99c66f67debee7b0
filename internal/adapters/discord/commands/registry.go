package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"rules-bot/internal/adapters/metrics"
	"rules-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

const (
	CommandPing  = "pingv2"
	CommandRules = "rulesv2"

	optionQuestion = "question"
)

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandPing,
			Description: "Replies with Pong! Used to test sync.",
			Type:        discordgo.ChatApplicationCommand,
		},
		{
			Name:        CommandRules,
			Description: "Ask about the server rules.",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(optionQuestion, "What do you want to know?", true),
			},
		},
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// RegisterCommands creates (or overwrites, by name) every command in one scope.
// It keeps going after a failure; the returned slice has nil entries for
// commands that could not be created.
func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	registered := make([]*discordgo.ApplicationCommand, len(commands))
	var errs []error

	for i, cmd := range commands {
		result, err := session.ApplicationCommandCreate(appID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "guild", guildID, "error", err)
			metrics.CommandRegistrations.WithLabelValues(cmd.Name, "failure").Inc()
			errs = append(errs, fmt.Errorf("create %s: %w", cmd.Name, err))
			continue
		}
		registered[i] = result
		metrics.CommandRegistrations.WithLabelValues(cmd.Name, "success").Inc()
		slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
	}

	return registered, errors.Join(errs...)
}

type GuildResult struct {
	GuildID    string
	Registered []string
	Fetched    []string
	Err        error
}

// Registrar pushes the command set to every configured guild and reads each
// registry back. Guilds are handled one after another and independently.
type Registrar struct {
	session CommandSession
}

func NewRegistrar(session CommandSession) *Registrar {
	return &Registrar{session: session}
}

// Push never aborts on a failing guild; failures are logged and reported in
// the per-guild results. An empty guild list targets the global scope.
func (r *Registrar) Push(appID string, commands []*discordgo.ApplicationCommand, guildIDs []string) []GuildResult {
	if len(guildIDs) == 0 {
		slog.Warn("No guild ids configured, registering global commands")
		guildIDs = []string{""}
	}

	slog.Info("Sending commands to guilds", "guilds", len(guildIDs), "commands", len(commands))

	results := make([]GuildResult, 0, len(guildIDs))
	for _, guildID := range guildIDs {
		res := r.pushGuild(appID, commands, guildID)
		if res.Err != nil {
			slog.Error("Command registration incomplete", "guild", guildID, "error", res.Err)
		}
		results = append(results, res)
	}
	return results
}

func (r *Registrar) pushGuild(appID string, commands []*discordgo.ApplicationCommand, guildID string) GuildResult {
	res := GuildResult{GuildID: guildID}
	var errs []error

	registered, err := RegisterCommands(r.session, commands, appID, guildID)
	if err != nil {
		errs = append(errs, err)
	}
	for _, cmd := range registered {
		if cmd != nil {
			res.Registered = append(res.Registered, cmd.Name)
		}
	}

	fetched, err := r.session.ApplicationCommands(appID, guildID)
	if err != nil {
		errs = append(errs, fmt.Errorf("fetch commands: %w", err))
	} else {
		res.Fetched = commandNames(fetched)
		slog.Info("Commands registered", "guild", guildID, "count", len(fetched), "names", res.Fetched)
	}

	res.Err = domain.Upstream("command registration", errors.Join(errs...))
	return res
}

func commandNames(cmds []*discordgo.ApplicationCommand) []string {
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			names = append(names, c.Name)
		}
	}
	return names
}

// ReadyHandler pushes the command set every time the gateway reports Ready.
// appID may be empty, in which case the application id from the Ready payload is used.
func ReadyHandler(registrar *Registrar, appID string, guildIDs []string) func(*discordgo.Session, *discordgo.Ready) {
	return func(_ *discordgo.Session, r *discordgo.Ready) {
		id := resolveApplicationID(appID, r)
		if id == "" {
			slog.Error("Cannot register commands, application id unknown")
			return
		}
		if r.User != nil {
			slog.Info("Bot is ready", "user", r.User.Username, "application_id", id)
		}
		registrar.Push(id, GetApplicationCommands(), guildIDs)
	}
}

func resolveApplicationID(configured string, r *discordgo.Ready) string {
	switch {
	case configured != "":
		return configured
	case r == nil:
		return ""
	case r.Application != nil && r.Application.ID != "":
		return r.Application.ID
	case r.User != nil:
		return r.User.ID
	default:
		return ""
	}
}
