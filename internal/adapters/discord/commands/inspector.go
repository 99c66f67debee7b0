package commands

import (
	"errors"
	"fmt"
	"io"

	"rules-bot/internal/adapters/discord/formatting"
	"rules-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// Inspector reads command registries without modifying them.
type Inspector struct {
	lister CommandLister
}

func NewInspector(lister CommandLister) *Inspector {
	return &Inspector{lister: lister}
}

// List returns the commands registered in a guild, or globally when guildID is empty.
func (in *Inspector) List(appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	cmds, err := in.lister.ApplicationCommands(appID, guildID)
	if err != nil {
		return nil, domain.Upstream("list commands", err)
	}
	if cmds == nil {
		cmds = []*discordgo.ApplicationCommand{}
	}
	return cmds, nil
}

// Report writes the command list of every guild followed by the global list.
// A failing scope is skipped and its error is returned joined with the others.
func (in *Inspector) Report(w io.Writer, appID string, guildIDs []string) error {
	var errs []error

	for _, guildID := range guildIDs {
		if err := in.report(w, appID, guildID, fmt.Sprintf("🏠 Guild %s commands", guildID)); err != nil {
			errs = append(errs, fmt.Errorf("guild %s: %w", guildID, err))
		}
	}
	if err := in.report(w, appID, "", "🌍 Global commands"); err != nil {
		errs = append(errs, fmt.Errorf("global: %w", err))
	}

	return errors.Join(errs...)
}

func (in *Inspector) report(w io.Writer, appID, guildID, heading string) error {
	cmds, err := in.List(appID, guildID)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, formatting.MsgCommandList(heading, commandNames(cmds)))
	return err
}
