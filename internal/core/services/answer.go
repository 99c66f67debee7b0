package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"rules-bot/internal/adapters/metrics"
	"rules-bot/internal/core/domain"
	"rules-bot/internal/core/ports"
)

const (
	// MaxAnswerRunes leaves headroom under Discord's 2000 character message limit.
	MaxAnswerRunes = 1900
	Ellipsis       = "..."

	SystemPrompt = "You are a professional server rules assistant.\n" +
		"Answer only from the rules below; if not specified, say 'Not specified. Please ask a moderator.'"
)

type AnswerOptions struct {
	Temperature float32
	MaxTokens   int
}

type AnswerService struct {
	completer ports.Completer
	rules     string
	retriever *Retriever
	opts      AnswerOptions
}

// NewAnswerService reads the rules from source once; the text is shared
// read-only by every request.
func NewAnswerService(source ports.RulesSource, completer ports.Completer, opts AnswerOptions) *AnswerService {
	return &AnswerService{
		completer: completer,
		rules:     source.Load(),
		opts:      opts,
	}
}

// WithRetriever switches the service to excerpt mode. Passing nil keeps the
// full document in every prompt.
func (s *AnswerService) WithRetriever(r *Retriever) *AnswerService {
	s.retriever = r
	return s
}

func (s *AnswerService) Rules() string {
	return s.rules
}

func (s *AnswerService) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrEmptyQuestion
	}

	userPrompt, citations, err := s.buildPrompt(ctx, question)
	if err != nil {
		return "", err
	}

	text, err := s.completer.Complete(ctx, domain.CompletionRequest{
		System:      SystemPrompt,
		User:        userPrompt,
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
	})
	if err != nil {
		return "", domain.Upstream("completion", err)
	}

	text = strings.TrimSpace(text)
	if citations != "" {
		text = text + "\n" + citations
	}

	return Truncate(text, MaxAnswerRunes), nil
}

func (s *AnswerService) buildPrompt(ctx context.Context, question string) (string, string, error) {
	if s.retriever == nil {
		return fmt.Sprintf("SERVER RULES:\n%s\n\nQUESTION: %s", s.rules, question), "", nil
	}

	sections, err := s.retriever.Relevant(ctx, question)
	if err != nil {
		return "", "", domain.Upstream("embedding", err)
	}

	blocks := make([]string, len(sections))
	cites := make([]string, len(sections))
	for i, sec := range sections {
		blocks[i] = fmt.Sprintf("[%s]\n%s", sec.Section, sec.Text)
		cites[i] = fmt.Sprintf("[%s]", sec.Section)
	}

	slog.Debug("Selected rule excerpts", "question", question, "sections", cites)

	prompt := fmt.Sprintf("RULE EXCERPTS:\n%s\n\nQUESTION: %s", strings.Join(blocks, "\n\n"), question)
	return prompt, strings.Join(cites, " "), nil
}

// Truncate cuts text to limit runes and appends Ellipsis when anything was removed.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	metrics.AnswersTruncated.Inc()
	return string(runes[:limit]) + Ellipsis
}
