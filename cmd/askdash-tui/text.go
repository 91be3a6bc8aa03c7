package main

import (
	"os"
	"strconv"
	"strings"

	"askdash/internal/textutil"
)

func wrapText(text string, width int) string {
	return textutil.Wrap(text, width)
}

func compactSingleLine(text string, limit int) string {
	return textutil.CompactSingleLine(text, limit)
}

func nullCoalesce(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// lookupEnv returns the trimmed value of key and whether it was non-empty.
func lookupEnv(key string) (string, bool) {
	raw, ok := os.LookupEnv(key)
	value := strings.TrimSpace(raw)
	return value, ok && value != ""
}

func envOr(key, fallback string) string {
	if value, ok := lookupEnv(key); ok {
		return value
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	value, ok := lookupEnv(key)
	if !ok {
		return fallback
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}

// envOrBool accepts strconv.ParseBool forms plus yes/no and on/off.
func envOrBool(key string, fallback bool) bool {
	value, ok := lookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(value) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed
	}
	return fallback
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(value, lo, hi int) int {
	return maxInt(lo, min(value, hi))
}
