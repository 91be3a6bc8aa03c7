package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"askdash/internal/askclient"
	"askdash/internal/dashboard"
	"askdash/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var errNothingToSubmit = errors.New("nothing to submit: pick a prompt or pass -question")

// errRequestFailed marks a one-shot run whose call settled on the failure path.
var errRequestFailed = errors.New("request failed")

func newController(cfg appConfig, logger *zap.Logger) *dashboard.Controller {
	client := askclient.New(cfg.endpoint, askclient.WithLogger(logger.Named("askclient")))
	return dashboard.NewController(client, cfg.user, cfg.llmChoice, logger.Named("dashboard"))
}

// runOnce drives the controller without a terminal UI and prints the answer.
func runOnce(ctx context.Context, cfg appConfig, ctrl *dashboard.Controller, out io.Writer) error {
	ctrl.SelectPrompt(cfg.promptID)
	if cfg.question != "" {
		ctrl.EditCustomQuestion(cfg.question)
	}
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}
	if !ctrl.SubmitAndWait(ctx) {
		return errNothingToSubmit
	}
	response := ctrl.State().Response
	fmt.Fprintln(out, response)
	if response == dashboard.FailureMessage {
		return errRequestFailed
	}
	return nil
}

func main() {
	_ = godotenv.Load()
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "askdash-tui: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.logLevel, cfg.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "askdash-tui: init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("askdash-tui starting",
		zap.String("endpoint", cfg.endpoint),
		zap.String("llm_choice", cfg.llmChoice),
		zap.Bool("one_shot", cfg.oneShot()),
	)

	ctrl := newController(cfg, logger)

	if cfg.oneShot() {
		if err := runOnce(context.Background(), cfg, ctrl, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "askdash-tui: %v\n", err)
			_ = logger.Sync()
			os.Exit(1)
		}
		return
	}

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(newModel(cfg, ctrl, logger), opts...)
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "askdash-tui fatal error: %v\n", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
