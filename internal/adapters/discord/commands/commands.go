package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rules-bot/internal/adapters/discord/formatting"
	"rules-bot/internal/adapters/metrics"
	"rules-bot/internal/core/ports"

	"github.com/bwmarrin/discordgo"
)

// DefaultAnswerTimeout is the lifetime of an interaction token; a follow-up
// sent after it expires is rejected by Discord.
const DefaultAnswerTimeout = 14 * time.Minute

var errAnswerPanic = errors.New("answer computation panicked")

type BotHandler struct {
	Answerer      ports.Answerer
	AnswerTimeout time.Duration
}

func NewBotHandler(answerer ports.Answerer) *BotHandler {
	return &BotHandler{
		Answerer:      answerer,
		AnswerTimeout: DefaultAnswerTimeout,
	}
}

func (h *BotHandler) Ping(ctx context.Context, s DiscordSession, i *discordgo.InteractionCreate) {
	if err := respond(s, i, formatting.MsgPong); err != nil {
		Logger(ctx).Error("Failed to respond to ping", "error", err)
		metrics.Interactions.WithLabelValues(CommandPing, "failure").Inc()
		return
	}
	metrics.Interactions.WithLabelValues(CommandPing, "success").Inc()
}

// Rules acknowledges the interaction first, then answers with exactly one follow-up.
func (h *BotHandler) Rules(ctx context.Context, s DiscordSession, i *discordgo.InteractionCreate) {
	log := Logger(ctx)

	if err := deferResponse(s, i); err != nil {
		log.Error("Failed to defer rules interaction", "error", err)
		metrics.Interactions.WithLabelValues(CommandRules, "failure").Inc()
		return
	}

	question := strings.TrimSpace(getStringOption(i.ApplicationCommandData().Options, optionQuestion))
	if question == "" {
		h.finish(ctx, s, i, formatting.MsgQuestionRequired, "invalid")
		return
	}

	timeout := h.AnswerTimeout
	if timeout <= 0 {
		timeout = DefaultAnswerTimeout
	}
	answerCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		answer string
		err    error
	)
	select {
	case res := <-h.answerAsync(answerCtx, question):
		answer, err = res.text, res.err
	case <-answerCtx.Done():
		err = answerCtx.Err()
	}

	if err == nil && strings.TrimSpace(answer) == "" {
		err = errors.New("empty answer")
	}
	if err != nil {
		log.Error("Failed to answer rules question", "error", err)
		h.finish(ctx, s, i, formatting.MsgSomethingWrong, "failure")
		return
	}

	h.finish(ctx, s, i, answer, "success")
}

type answerResult struct {
	text string
	err  error
}

// answerAsync never blocks the sender: the channel is buffered so an abandoned
// computation can still deliver and exit.
func (h *BotHandler) answerAsync(ctx context.Context, question string) <-chan answerResult {
	out := make(chan answerResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				out <- answerResult{err: fmt.Errorf("%w: %v", errAnswerPanic, r)}
			}
		}()
		text, err := h.Answerer.Answer(ctx, question)
		out <- answerResult{text: text, err: err}
	}()
	return out
}

func (h *BotHandler) finish(ctx context.Context, s DiscordSession, i *discordgo.InteractionCreate, msg, status string) {
	if err := followup(s, i, msg); err != nil {
		Logger(ctx).Error("Failed to send follow-up", "error", err)
		status = "failure"
	}
	metrics.Interactions.WithLabelValues(CommandRules, status).Inc()
}
