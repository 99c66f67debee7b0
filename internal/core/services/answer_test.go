package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"rules-bot/internal/adapters/rules"
	"rules-bot/internal/core/domain"
)

func newTestService(completer *mockCompleter) *AnswerService {
	return NewAnswerService(staticRules("[1. Advertising]\nNo advertising."), completer, AnswerOptions{
		Temperature: 0.2,
		MaxTokens:   500,
	})
}

func TestAnswer_BuildsPromptFromFullDocument(t *testing.T) {
	completer := &mockCompleter{}
	svc := newTestService(completer)

	if _, err := svc.Answer(context.Background(), "  Can I advertise?  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := completer.lastRequest
	if req.System != SystemPrompt {
		t.Errorf("unexpected system prompt %q", req.System)
	}
	wantUser := "SERVER RULES:\n[1. Advertising]\nNo advertising.\n\nQUESTION: Can I advertise?"
	if req.User != wantUser {
		t.Errorf("unexpected user prompt:\n%q\nwant:\n%q", req.User, wantUser)
	}
	if req.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", req.Temperature)
	}
	if req.MaxTokens != 500 {
		t.Errorf("expected max tokens 500, got %d", req.MaxTokens)
	}
}

func TestAnswer_TrimsResponse(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return "\n  No advertising is allowed.  \n", nil
		},
	}

	got, err := newTestService(completer).Answer(context.Background(), "ads?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "No advertising is allowed." {
		t.Errorf("expected trimmed answer, got %q", got)
	}
}

func TestAnswer_TruncatesLongOutput(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		truncated bool
	}{
		{"short", "ok", false},
		{"exactly at limit", strings.Repeat("a", MaxAnswerRunes), false},
		{"one over limit", strings.Repeat("a", MaxAnswerRunes+1), true},
		{"far over limit", strings.Repeat("b", 10000), true},
		{"multibyte over limit", strings.Repeat("é", MaxAnswerRunes+50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &mockCompleter{
				completeFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
					return tt.output, nil
				},
			}

			got, err := newTestService(completer).Answer(context.Background(), "q")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			n := utf8.RuneCountInString(got)
			if n > MaxAnswerRunes+len(Ellipsis) {
				t.Errorf("answer has %d runes, limit is %d", n, MaxAnswerRunes+len(Ellipsis))
			}
			if !utf8.ValidString(got) {
				t.Error("answer is not valid UTF-8")
			}

			if tt.truncated {
				if !strings.HasSuffix(got, Ellipsis) {
					t.Error("expected truncated answer to end with ellipsis")
				}
				if n != MaxAnswerRunes+len(Ellipsis) {
					t.Errorf("expected %d runes, got %d", MaxAnswerRunes+len(Ellipsis), n)
				}
			} else if got != tt.output {
				t.Errorf("expected untouched output, got %d runes", n)
			}
		})
	}
}

func TestAnswer_MissingDocumentStillAnswers(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return "Not specified. Please ask a moderator.", nil
		},
	}
	store := rules.NewFileStore(t.TempDir() + "/missing.txt")
	svc := NewAnswerService(store, completer, AnswerOptions{Temperature: 0.2, MaxTokens: 500})

	if svc.Rules() != rules.FallbackText {
		t.Fatalf("expected fallback rules text, got %q", svc.Rules())
	}

	got, err := svc.Answer(context.Background(), "Can I post memes?")
	if err != nil {
		t.Fatalf("expected no error with missing document, got %v", err)
	}
	if got != "Not specified. Please ask a moderator." {
		t.Errorf("unexpected answer %q", got)
	}
	if !strings.Contains(completer.lastRequest.User, rules.FallbackText) {
		t.Error("expected fallback text in prompt")
	}
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	completer := &mockCompleter{}

	_, err := newTestService(completer).Answer(context.Background(), "   ")
	if !errors.Is(err, domain.ErrEmptyQuestion) {
		t.Errorf("expected ErrEmptyQuestion, got %v", err)
	}
	if completer.calls != 0 {
		t.Errorf("expected no completion call, got %d", completer.calls)
	}
}

func TestAnswer_CompletionErrorIsUpstream(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return "", errors.New("connection reset")
		},
	}

	_, err := newTestService(completer).Answer(context.Background(), "q")

	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
	if ue.Op != "completion" {
		t.Errorf("expected op 'completion', got %q", ue.Op)
	}
}

func TestAnswer_WithRetriever(t *testing.T) {
	sections := []domain.RuleSection{
		{ID: "1", Section: "1. Advertising", Text: "No advertising."},
		{ID: "2", Section: "2. Spam", Text: "No spam."},
		{ID: "3", Section: "3. Language", Text: "English only."},
	}
	embedder := vectorEmbedder(map[string][]float32{
		"No advertising.":  {1, 0, 0},
		"No spam.":         {0.8, 0.6, 0},
		"English only.":    {0, 1, 0},
		"Can I advertise?": {1, 0, 0},
	})
	retriever := NewRetriever(embedder, 2)
	if err := retriever.Index(context.Background(), sections); err != nil {
		t.Fatalf("index: %v", err)
	}

	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return "No, advertising is not allowed.", nil
		},
	}
	svc := newTestService(completer).WithRetriever(retriever)

	got, err := svc.Answer(context.Background(), "Can I advertise?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "No, advertising is not allowed.\n[1. Advertising] [2. Spam]"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	wantPrompt := "RULE EXCERPTS:\n[1. Advertising]\nNo advertising.\n\n[2. Spam]\nNo spam.\n\nQUESTION: Can I advertise?"
	if completer.lastRequest.User != wantPrompt {
		t.Errorf("unexpected prompt:\n%q\nwant:\n%q", completer.lastRequest.User, wantPrompt)
	}
}

func TestAnswer_WithRetriever_TruncatesAfterCitations(t *testing.T) {
	embedder := &mockEmbedder{}
	retriever := NewRetriever(embedder, 1)
	if err := retriever.Index(context.Background(), []domain.RuleSection{{ID: "1", Section: "Rule", Text: "x"}}); err != nil {
		t.Fatalf("index: %v", err)
	}

	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return strings.Repeat("a", MaxAnswerRunes), nil
		},
	}

	got, err := newTestService(completer).WithRetriever(retriever).Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if utf8.RuneCountInString(got) != MaxAnswerRunes+len(Ellipsis) {
		t.Errorf("expected truncation to cover citations, got %d runes", utf8.RuneCountInString(got))
	}
}

func TestAnswer_WithRetriever_EmbeddingErrorIsUpstream(t *testing.T) {
	embedder := &mockEmbedder{}
	retriever := NewRetriever(embedder, 1)
	if err := retriever.Index(context.Background(), []domain.RuleSection{{ID: "1", Section: "Rule", Text: "x"}}); err != nil {
		t.Fatalf("index: %v", err)
	}
	embedder.embedFunc = func(ctx context.Context, input string) ([]float32, error) {
		return nil, errors.New("embedding down")
	}

	completer := &mockCompleter{}
	_, err := newTestService(completer).WithRetriever(retriever).Answer(context.Background(), "q")

	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if completer.calls != 0 {
		t.Error("completion should not be called when retrieval fails")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"under limit", "abc", 5, "abc"},
		{"at limit", "abcde", 5, "abcde"},
		{"over limit", "abcdef", 5, "abcde..."},
		{"runes not bytes", "ééé", 2, "éé..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.limit); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}
