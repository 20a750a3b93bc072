package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("TELEGRAM_TOKEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Enabled() || cfg.Redis.Enabled() || cfg.Telegram.Enabled() {
		t.Errorf("optional components should be disabled by default")
	}
	if cfg.Redis.TTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.Redis.TTL)
	}
	if cfg.Session.HistoryDepth != 50 {
		t.Errorf("expected history depth 50, got %d", cfg.Session.HistoryDepth)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected info level, got %q", cfg.Log.Level)
	}
}

func TestLoad_Database(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "pricing")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := "host=localhost port=6543 user=pricing password=secret dbname=special_fields sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("unexpected DSN:\n got %s\nwant %s", got, want)
	}
}

func TestLoad_DatabaseWithoutUser(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DB_USER is missing")
	}
}

func TestLoad_NegativeHistory(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("SESSION_HISTORY_DEPTH", "-1")

	if _, err := Load(); err == nil {
		t.Error("expected error for negative history depth")
	}
}

func TestLoad_TelegramEnabled(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "-100200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Telegram.Enabled() || cfg.Telegram.AdminChatID != -100200 {
		t.Errorf("telegram config not parsed: %+v", cfg.Telegram)
	}
}
