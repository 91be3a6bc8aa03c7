package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// OllamaProvider talks to a local Ollama daemon's /api/chat endpoint.
type OllamaProvider struct {
	apiBase     string
	model       string
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewOllamaProvider returns nil when apiBase is empty.
func NewOllamaProvider(apiBase, model string, temperature float64, logger *zap.Logger) *OllamaProvider {
	apiBase = strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if apiBase == "" {
		return nil
	}
	return &OllamaProvider{
		apiBase:     apiBase,
		model:       model,
		temperature: temperature,
		client:      &http.Client{},
		logger:      logger,
	}
}

func (o *OllamaProvider) Name() string {
	return "Ollama"
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":  o.model,
		"stream": false,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"options": map[string]any{"temperature": o.temperature},
	}
	payload, err := postJSON(ctx, o.client, o.apiBase+"/api/chat", nil, body)
	if err != nil {
		o.logger.Error("Ollama generation failed", zap.Error(err))
		return "", fmt.Errorf("ollama request failed on /api/chat: %w", err)
	}
	var parsed struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("ollama returned non-json payload")
	}
	content := strings.TrimSpace(parsed.Message.Content)
	if content == "" {
		return "", errors.New("ollama returned empty response content")
	}
	return content, nil
}

// Ping checks that the daemon answers /api/tags.
func (o *OllamaProvider) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.apiBase+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Debug("Ollama ping failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
