package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REPORT_CHAT_ID", "")
	t.Setenv("REPORT_TIME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.TelegramToken)
	assert.Equal(t, "habit_tracker.db", cfg.DatabaseURL)
	assert.Equal(t, int64(0), cfg.ReportChatID)
	assert.Equal(t, "09:00", cfg.ReportTime)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "  token-with-spaces  ")
	t.Setenv("DATABASE_URL", "/tmp/trackers.db")
	t.Setenv("REPORT_CHAT_ID", "-100200300")
	t.Setenv("REPORT_TIME", "21:30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token-with-spaces", cfg.TelegramToken)
	assert.Equal(t, "/tmp/trackers.db", cfg.DatabaseURL)
	assert.Equal(t, int64(-100200300), cfg.ReportChatID)
	assert.Equal(t, "21:30", cfg.ReportTime)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestParseChatID(t *testing.T) {
	assert.Equal(t, int64(0), parseChatID(""))
	assert.Equal(t, int64(0), parseChatID("not-a-number"))
	assert.Equal(t, int64(42), parseChatID("42"))
	assert.Equal(t, int64(-42), parseChatID("-42"))
}
