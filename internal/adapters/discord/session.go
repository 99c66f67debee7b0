package discord

import (
	"log/slog"

	"rules-bot/internal/adapters/metrics"
	"rules-bot/internal/config"

	"github.com/bwmarrin/discordgo"
)

func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	// Slash commands only need the guilds intent.
	discord.Identify.Intents = discordgo.IntentsGuilds
	discord.LogLevel = discordLogLevel(cfg.LogLevel)
	discord.Client.Transport = metrics.NewRoundTripper("discord", discord.Client.Transport)

	return discord, nil
}
