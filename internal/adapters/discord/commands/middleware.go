package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

type traceKey struct{}

// WithTrace tags the request with a fresh trace id and logs its start and duration.
func WithTrace(next CommandHandler) CommandHandler {
	return func(ctx context.Context, s DiscordSession, i *discordgo.InteractionCreate) {
		ctx = context.WithValue(ctx, traceKey{}, uuid.NewString())
		log := Logger(ctx)

		name := i.ApplicationCommandData().Name
		start := time.Now()
		log.Info("Received command", "name", name, "guild_id", i.GuildID, "user_id", userID(i))

		next(ctx, s, i)

		log.Info("Command finished", "name", name, "elapsed", time.Since(start))
	}
}

// Logger returns the default logger annotated with the request trace, if any.
func Logger(ctx context.Context) *slog.Logger {
	if trace, ok := ctx.Value(traceKey{}).(string); ok {
		return slog.Default().With("trace", trace)
	}
	return slog.Default()
}

func userID(i *discordgo.InteractionCreate) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.ID
	case i.User != nil:
		return i.User.ID
	default:
		return ""
	}
}
