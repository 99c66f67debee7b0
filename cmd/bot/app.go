package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"rules-bot/internal/adapters/discord"
	"rules-bot/internal/adapters/discord/commands"
	"rules-bot/internal/adapters/llm/openai"
	"rules-bot/internal/adapters/rules"
	"rules-bot/internal/config"
	"rules-bot/internal/core/services"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const indexTimeout = 2 * time.Minute

type App struct {
	config        *config.Config
	discord       *discordgo.Session
	answers       *services.AnswerService
	router        *commands.Router
	metricsServer *http.Server
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewApp wires the bot. ctx bounds startup indexing and every interaction
// handled afterwards; Shutdown cancels it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	discord.BridgeLogger(slog.Default())

	session, err := discord.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	llm := openai.NewClient(cfg)
	answers := services.NewAnswerService(rules.NewFileStore(cfg.RulesPath), llm, services.AnswerOptions{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if retriever := buildRetriever(ctx, cfg, llm, answers.Rules()); retriever != nil {
		answers.WithRetriever(retriever)
	}

	botHandlers := commands.NewBotHandler(answers)
	router := commands.NewRouter(ctx)
	router.Register(commands.CommandPing, commands.WithTrace(botHandlers.Ping))
	router.Register(commands.CommandRules, commands.WithTrace(botHandlers.Rules))

	registrar := commands.NewRegistrar(session)
	session.AddHandler(commands.ReadyHandler(registrar, cfg.ApplicationID, cfg.GuildIDs))
	session.AddHandler(router.HandleFunc())

	return &App{
		config:  cfg,
		discord: session,
		answers: answers,
		router:  router,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// buildRetriever returns nil when excerpt mode is disabled or indexing fails;
// the answer service then keeps sending the whole document.
func buildRetriever(ctx context.Context, cfg *config.Config, llm *openai.Client, text string) *services.Retriever {
	if cfg.RetrievalTopK <= 0 {
		return nil
	}
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("Retrieval disabled, OPENAI_API_KEY is not set")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	retriever := services.NewRetriever(llm, cfg.RetrievalTopK)
	if err := retriever.Index(ctx, rules.Chunk(text)); err != nil {
		slog.Error("Failed to index rules, using full document", "error", err)
		return nil
	}
	slog.Info("Rules indexed", "sections", retriever.Len(), "top_k", cfg.RetrievalTopK)
	return retriever
}

func (a *App) Run() error {
	a.startMetricsServer()

	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	slog.Info("Rules bot is online!", "guilds", len(a.config.GuildIDs))
	return nil
}

func (a *App) startMetricsServer() {
	if a.config.MetricsAddr == "" {
		slog.Info("Metrics server disabled")
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Starting metrics server", "addr", a.config.MetricsAddr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	if a.cancel != nil {
		a.cancel()
	}

	var errs []error

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
