package ports

import (
	"context"

	"rules-bot/internal/core/domain"
)

type RulesSource interface {
	Load() string
}

type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, input string) ([]float32, error)
}

// Answerer produces the user-facing reply for a rules question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}
