package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/thundertactical/thunder-ai-backend/pkg/config"
	"github.com/thundertactical/thunder-ai-backend/pkg/metrics"
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient implements Completer with go-openai.
type OpenAIClient struct {
	client      chatClient
	configured  bool
	model       string
	temperature *float32
	maxTokens   int
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewOpenAIClient creates a completion client from the LLM settings.
// BaseURL, when set, points the client at an OpenAI-compatible gateway.
func NewOpenAIClient(cfg *config.LLMConfig, m *metrics.Metrics) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	timeout := 60 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	return newOpenAIClient(openai.NewClientWithConfig(oc), cfg, m)
}

func newOpenAIClient(client chatClient, cfg *config.LLMConfig, m *metrics.Metrics) *OpenAIClient {
	return &OpenAIClient{
		client:      client,
		configured:  cfg.Configured(),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		metrics:     m,
		logger:      slog.Default().With("component", "llm-client", "model", cfg.Model),
	}
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete returns the first choice's content, trimmed. The result may be
// empty when the model answered with blank content.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  toOpenAIMessages(messages),
		MaxTokens: c.maxTokens,
	}
	if c.temperature != nil {
		req.Temperature = *c.temperature
		if req.Temperature == 0 {
			// Temperature is omitempty on the wire; a zero would fall back to the provider default.
			req.Temperature = math.SmallestNonzeroFloat32
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	latency := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.ObserveCompletion(c.model, status, latency)

	if err != nil {
		c.logger.Error("Completion request failed", "latency_ms", latency.Milliseconds(), "error", err)
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	c.logger.Info("Completion finished",
		"latency_ms", latency.Milliseconds(),
		"choices", len(resp.Choices),
		"total_tokens", resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
