package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"askdash/internal/askclient"
	"askdash/internal/identity"
	"askdash/internal/prompt"
)

type appConfig struct {
	endpoint  string
	llmChoice string
	user      identity.User
	timeout   time.Duration
	logFile   string
	logLevel  string
	altScreen bool

	// one-shot mode
	promptID string
	question string
}

func (c appConfig) oneShot() bool {
	return c.promptID != "" || c.question != ""
}

func parseFlags(args []string) (appConfig, error) {
	fs := flag.NewFlagSet("askdash-tui", flag.ContinueOnError)

	cfg := appConfig{}
	var userJSON string
	var timeoutSeconds int
	fs.StringVar(&cfg.endpoint, "endpoint", envOr("ASKDASH_ENDPOINT", askclient.DefaultEndpoint), "Ask endpoint URL")
	fs.StringVar(&cfg.llmChoice, "llm", envOr("ASKDASH_LLM_CHOICE", "OpenAI"), "Model vendor forwarded as llm_choice (OpenAI|Anthropic|Gemini|Ollama)")
	fs.StringVar(&cfg.user.ID, "user-id", envOr("ASKDASH_USER_ID", ""), "User id sent with each question")
	fs.StringVar(&cfg.user.Email, "email", envOr("ASKDASH_USER_EMAIL", ""), "User email")
	fs.StringVar(&cfg.user.FirstName, "first-name", envOr("ASKDASH_USER_FIRST_NAME", ""), "User first name")
	fs.StringVar(&cfg.user.LastName, "last-name", envOr("ASKDASH_USER_LAST_NAME", ""), "User last name")
	fs.StringVar(&userJSON, "user-json", envOr("ASKDASH_USER_JSON", ""), "Full user record as JSON; overrides the individual user flags")
	fs.IntVar(&timeoutSeconds, "timeout", envOrInt("ASKDASH_TIMEOUT_SECONDS", 0), "Per-request timeout seconds (0 waits indefinitely)")
	fs.StringVar(&cfg.logFile, "log-file", envOr("ASKDASH_LOG_FILE", filepath.Join(os.TempDir(), "askdash-tui.log")), "Diagnostic log file")
	fs.StringVar(&cfg.logLevel, "log-level", envOr("ASKDASH_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.altScreen, "alt-screen", envOrBool("ASKDASH_ALT_SCREEN", true), "Use alternate screen buffer")
	fs.StringVar(&cfg.promptID, "prompt", "", "Ask once with this prompt id and print the response")
	fs.StringVar(&cfg.question, "question", "", "Ask once with this custom question and print the response")
	if err := fs.Parse(args); err != nil {
		return appConfig{}, err
	}

	if strings.TrimSpace(userJSON) != "" {
		user, err := identity.ParseJSON(userJSON)
		if err != nil {
			return appConfig{}, err
		}
		cfg.user = user
	}
	cfg.endpoint = strings.TrimSpace(cfg.endpoint)
	cfg.llmChoice = strings.TrimSpace(cfg.llmChoice)
	cfg.timeout = time.Duration(clampInt(timeoutSeconds, 0, 600)) * time.Second
	cfg.promptID = strings.TrimSpace(cfg.promptID)
	if cfg.promptID == "" && cfg.question != "" {
		cfg.promptID = prompt.CustomID
	}
	if cfg.promptID != "" {
		if _, ok := prompt.Lookup(cfg.promptID); !ok {
			return appConfig{}, fmt.Errorf("unknown prompt %q (valid: %s)", cfg.promptID, validPromptIDs())
		}
	}
	return cfg, nil
}

func validPromptIDs() string {
	ids := make([]string, 0, len(prompt.Options()))
	for _, opt := range prompt.Options() {
		ids = append(ids, opt.ID)
	}
	return strings.Join(ids, ", ")
}
