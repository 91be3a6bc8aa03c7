package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

const anthropicMaxTokens = 2048

// AnthropicProvider answers through the Claude Messages API.
type AnthropicProvider struct {
	client      anthropic.Client
	model       string
	temperature float64
	logger      *zap.Logger
}

// NewAnthropicProvider returns nil when apiKey is empty. An empty baseURL
// uses the SDK default.
func NewAnthropicProvider(apiKey, model, baseURL string, temperature float64, logger *zap.Logger) *AnthropicProvider {
	if apiKey == "" {
		return nil
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &AnthropicProvider{
		client:      anthropic.NewClient(opts...),
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

func (a *AnthropicProvider) Name() string {
	return "Anthropic"
}

func (a *AnthropicProvider) complete(ctx context.Context, prompt string, maxTokens int64, system string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(a.temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}
	var texts []string
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			texts = append(texts, block.Text)
		}
	}
	a.logger.Debug("Anthropic response received",
		zap.String("stop_reason", string(msg.StopReason)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return strings.TrimSpace(strings.Join(texts, "")), nil
}

func (a *AnthropicProvider) Generate(ctx context.Context, prompt string) (string, error) {
	a.logger.Debug("Generating with Anthropic", zap.String("model", a.model))

	text, err := a.complete(ctx, prompt, anthropicMaxTokens, systemPrompt)
	if err != nil {
		a.logger.Error("Anthropic generation failed", zap.Error(err))
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if text == "" {
		return "", errors.New("empty response from Anthropic")
	}
	return text, nil
}

func (a *AnthropicProvider) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := a.complete(ctx, "ping", 10, ""); err != nil {
		a.logger.Debug("Anthropic ping failed", zap.Error(err))
		return false
	}
	return true
}
