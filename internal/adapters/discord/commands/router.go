package commands

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

type CommandHandler func(ctx context.Context, s DiscordSession, i *discordgo.InteractionCreate)

type Router struct {
	ctx    context.Context
	routes map[string]CommandHandler
}

// NewRouter returns a router whose handlers run under ctx; cancelling it
// aborts requests still in flight.
func NewRouter(ctx context.Context) *Router {
	slog.Info("Router initialized")
	return &Router{
		ctx:    ctx,
		routes: make(map[string]CommandHandler),
	}
}

func (r *Router) Register(name string, handler CommandHandler) {
	r.routes[name] = handler
}

func (r *Router) Handle(s DiscordSession, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := r.routes[name]
	if !ok {
		slog.Warn("No handler found for command", "name", name)
		return
	}

	handler(r.ctx, s, i)
}

func (r *Router) HandleFunc() func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		r.Handle(s, i)
	}
}

func (r *Router) Has(name string) bool {
	_, ok := r.routes[name]
	return ok
}
