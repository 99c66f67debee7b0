// Package openai adapts the OpenAI API to the completion and embedding ports.
package openai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"rules-bot/internal/adapters/metrics"
	"rules-bot/internal/config"
	"rules-bot/internal/core/domain"

	gopenai "github.com/sashabaranov/go-openai"
)

var errNoEmbedding = errors.New("embedding response contained no vectors")

type Client struct {
	client         *gopenai.Client
	model          string
	embeddingModel string
	timeout        time.Duration
}

func NewClient(cfg *config.Config) *Client {
	return NewClientWithHTTP(cfg, &http.Client{
		Transport: metrics.NewRoundTripper("openai", http.DefaultTransport),
	})
}

func NewClientWithHTTP(cfg *config.Config, httpClient *http.Client) *Client {
	clientCfg := gopenai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}

	return &Client{
		client:         gopenai.NewClientWithConfig(clientCfg),
		model:          cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		timeout:        cfg.Timeout,
	}
}

// Complete sends a single system+user exchange and returns the first choice.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: req.System},
			{Role: gopenai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	observe(start, err)
	if err != nil {
		slog.Error("Completion request failed", "model", c.model, "status", statusOf(err), "error", err)
		return "", domain.Upstream("completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.Upstream("completion", domain.ErrEmptyCompletion)
	}

	slog.Debug("Completion received",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"finish_reason", resp.Choices[0].FinishReason,
	)

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Embed(ctx context.Context, input string) ([]float32, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, gopenai.EmbeddingRequest{
		Input: []string{input},
		Model: gopenai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, domain.Upstream("embedding", err)
	}

	if len(resp.Data) == 0 {
		return nil, domain.Upstream("embedding", errNoEmbedding)
	}

	return resp.Data[0].Embedding, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func observe(start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.CompletionRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	metrics.CompletionRequests.WithLabelValues(status).Inc()
}

func statusOf(err error) int {
	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *gopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
