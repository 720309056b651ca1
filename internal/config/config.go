package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	ReportChatID  int64
	ReportTime    string
}

// Load reads configuration from environment variables with sane defaults.
// A local .env file is loaded first when present; variables already set in
// the environment take precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ReportChatID:  parseChatID(strings.TrimSpace(os.Getenv("REPORT_CHAT_ID"))),
		ReportTime:    strings.TrimSpace(os.Getenv("REPORT_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "habit_tracker.db"
	}

	if cfg.ReportTime == "" {
		cfg.ReportTime = "09:00"
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func parseChatID(raw string) int64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
