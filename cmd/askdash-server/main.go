package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"askdash/internal/config"
	"askdash/internal/llm"
	"askdash/internal/logging"
	"askdash/internal/server"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "askdash-server fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := buildRegistry(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if registry.Len() == 0 {
		logger.Warn("No LLM providers configured; only static prompts will be answered")
	}

	srv := server.New(registry, logger, server.Options{
		AskPath:         cfg.Server.AskPath,
		GenerateTimeout: cfg.Server.GenerateTimeout,
	})
	return srv.Run(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
}

func buildRegistry(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*llm.Registry, error) {
	temp := cfg.Server.Temperature
	gemini, err := llm.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, temp, logger.Named("gemini"))
	if err != nil {
		return nil, err
	}
	return llm.NewRegistry(
		llm.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, temp, logger.Named("openai")),
		llm.NewAnthropicProvider(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.BaseURL, temp, logger.Named("anthropic")),
		gemini,
		llm.NewOllamaProvider(cfg.Ollama.BaseURL, cfg.Ollama.Model, temp, logger.Named("ollama")),
	), nil
}
