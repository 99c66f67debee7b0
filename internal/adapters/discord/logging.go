package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var discordLogLevels = map[int]slog.Level{
	discordgo.LogError:         slog.LevelError,
	discordgo.LogWarning:       slog.LevelWarn,
	discordgo.LogInformational: slog.LevelInfo,
	discordgo.LogDebug:         slog.LevelDebug,
}

// BridgeLogger routes discordgo's internal log lines through slog.
func BridgeLogger(logger *slog.Logger) {
	discordgo.Logger = func(msgL, _ int, format string, args ...any) {
		level, ok := discordLogLevels[msgL]
		if !ok {
			level = slog.LevelInfo
		}
		logger.Log(
			context.Background(),
			level,
			strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", ""),
			"logger", "discordgo",
		)
	}
}

func discordLogLevel(level slog.Level) int {
	switch {
	case level <= slog.LevelDebug:
		return discordgo.LogDebug
	case level <= slog.LevelInfo:
		return discordgo.LogInformational
	case level <= slog.LevelWarn:
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}
