// Command commands prints the slash commands registered for the configured
// guilds and the global scope. It never modifies the registries.
package main

import (
	"log/slog"
	"os"
	"time"

	"rules-bot/internal/adapters/discord"
	"rules-bot/internal/adapters/discord/commands"
	"rules-bot/internal/config"

	"github.com/lmittmann/tint"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelWarn,
		TimeFormat: time.DateTime,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	session, err := discord.NewSession(cfg)
	if err != nil {
		os.Exit(1)
	}

	appID := cfg.ApplicationID
	if appID == "" {
		me, err := session.User("@me")
		if err != nil {
			slog.Error("Failed to resolve application id", "error", err)
			os.Exit(1)
		}
		appID = me.ID
	}

	if err := commands.NewInspector(session).Report(os.Stdout, appID, cfg.GuildIDs); err != nil {
		slog.Error("Failed to list some commands", "error", err)
		os.Exit(1)
	}
}
