package services

import (
	"context"

	"rules-bot/internal/core/domain"
)

type staticRules string

func (s staticRules) Load() string { return string(s) }

type mockCompleter struct {
	completeFunc func(ctx context.Context, req domain.CompletionRequest) (string, error)
	calls        int
	lastRequest  domain.CompletionRequest
}

func (m *mockCompleter) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	m.calls++
	m.lastRequest = req
	if m.completeFunc != nil {
		return m.completeFunc(ctx, req)
	}
	return "answer", nil
}

type mockEmbedder struct {
	embedFunc func(ctx context.Context, input string) ([]float32, error)
	calls     int
}

func (m *mockEmbedder) Embed(ctx context.Context, input string) ([]float32, error) {
	m.calls++
	if m.embedFunc != nil {
		return m.embedFunc(ctx, input)
	}
	return []float32{1, 0}, nil
}

// vectorEmbedder returns a fixed vector per known input.
func vectorEmbedder(vectors map[string][]float32) *mockEmbedder {
	return &mockEmbedder{
		embedFunc: func(ctx context.Context, input string) ([]float32, error) {
			if v, ok := vectors[input]; ok {
				return v, nil
			}
			return []float32{0, 0, 1}, nil
		},
	}
}
