package configs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)

	t.Setenv("PORT", "9001")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JOURNAL_PATH", "logs/chathistory.log")
	t.Setenv("HISTORY_DEPTH", "10")

	cfg, err := LoadConfig()
	req.NoError(err)

	req.Equal("development", cfg.Environment)
	req.Equal(9001, cfg.Port)
	req.Equal(8080, cfg.HTTPPort)
	req.Equal("logs/chathistory.log", cfg.JournalPath)
	req.Equal(10, cfg.HistoryDepth)
}

func TestLoadConfig_Overrides(t *testing.T) {
	req := require.New(t)

	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9100")
	t.Setenv("HTTP_PORT", "9200")
	t.Setenv("JOURNAL_PATH", "/var/log/chat/history.log")
	t.Setenv("HISTORY_DEPTH", "25")
	t.Setenv("MESSAGE_RATE", "2.5")
	t.Setenv("MESSAGE_BURST", "4")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	req.NoError(err)

	req.Equal("production", cfg.Environment)
	req.Equal(9100, cfg.Port)
	req.Equal(9200, cfg.HTTPPort)
	req.Equal("/var/log/chat/history.log", cfg.JournalPath)
	req.Equal(25, cfg.HistoryDepth)
	req.InDelta(2.5, cfg.MessageRate, 0.0001)
	req.Equal(4, cfg.MessageBurst)
	req.Equal([]string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfig_RejectsPrivilegedPort(t *testing.T) {
	req := require.New(t)

	t.Setenv("PORT", "80")
	t.Setenv("HTTP_PORT", "8080")

	_, err := LoadConfig()
	req.Error(err)
	req.Contains(err.Error(), "port number 80")
}

func TestLoadConfig_RejectsEqualPorts(t *testing.T) {
	req := require.New(t)

	t.Setenv("PORT", "9001")
	t.Setenv("HTTP_PORT", "9001")

	_, err := LoadConfig()
	req.Error(err)
	req.Contains(err.Error(), "must differ")
}

func TestLoadConfig_RejectsNegativeHistoryDepth(t *testing.T) {
	req := require.New(t)

	t.Setenv("PORT", "9001")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("HISTORY_DEPTH", "-1")

	_, err := LoadConfig()
	req.Error(err)
	req.Contains(err.Error(), "history depth")
}
