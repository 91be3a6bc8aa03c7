// Package config loads the ask server's settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	OpenAI    ProviderConfig
	Anthropic ProviderConfig
	Gemini    ProviderConfig
	Ollama    OllamaConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Addr            string
	AskPath         string
	GenerateTimeout time.Duration
	ShutdownTimeout time.Duration
	Temperature     float64
}

type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("ASKDASH_ADDR", ":5000"),
			AskPath:         getEnv("ASKDASH_ASK_PATH", "/api/ask"),
			GenerateTimeout: time.Duration(getEnvInt("ASKDASH_GENERATE_TIMEOUT_SECONDS", 90)) * time.Second,
			ShutdownTimeout: time.Duration(getEnvInt("ASKDASH_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
			Temperature:     getEnvFloat("ASKDASH_TEMPERATURE", 0.7),
		},
		OpenAI: ProviderConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Anthropic: ProviderConfig{
			APIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			Model:   getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			BaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		},
		Gemini: ProviderConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Ollama: OllamaConfig{
			BaseURL: getEnv("OLLAMA_API", ""),
			Model:   getEnv("OLLAMA_MODEL", "llama3.2:3b"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("ASKDASH_ADDR is required")
	}
	if !strings.HasPrefix(c.Server.AskPath, "/") {
		return fmt.Errorf("ASKDASH_ASK_PATH must start with /: %q", c.Server.AskPath)
	}
	if c.Server.GenerateTimeout <= 0 {
		return fmt.Errorf("ASKDASH_GENERATE_TIMEOUT_SECONDS must be positive")
	}
	if c.Server.Temperature < 0 || c.Server.Temperature > 2 {
		return fmt.Errorf("ASKDASH_TEMPERATURE must be within [0, 2]")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}
