package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Log      LogConfig      `envPrefix:"LOG_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Telegram TelegramConfig `envPrefix:"TELEGRAM_"`
	Session  SessionConfig  `envPrefix:"SESSION_"`

	ReportsDir string `env:"REPORTS_DIR" envDefault:"reports"`
}

type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	Production bool   `env:"PRODUCTION" envDefault:"true"`
	// File enables a rotated JSON log file next to stdout.
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"64"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"7"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"7"`
}

// DatabaseConfig describes the quote ledger. An empty Host disables it.
type DatabaseConfig struct {
	Host            string        `env:"HOST"`
	Port            int           `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME" envDefault:"special_fields"`
	SSLMode         string        `env:"SSL_MODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"2m"`
}

func (c DatabaseConfig) Enabled() bool { return c.Host != "" }

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig describes the editing session store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"24h"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type TelegramConfig struct {
	Token       string `env:"TOKEN"`
	AdminChatID int64  `env:"ADMIN_CHAT_ID"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`
}

func (c TelegramConfig) Enabled() bool { return c.Token != "" && c.AdminChatID != 0 }

type SessionConfig struct {
	HistoryDepth int `env:"HISTORY_DEPTH" envDefault:"50"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Session.HistoryDepth < 0 {
		return nil, fmt.Errorf("session history depth must not be negative, got %d", cfg.Session.HistoryDepth)
	}
	if cfg.Database.Enabled() && cfg.Database.User == "" {
		return nil, fmt.Errorf("DB_USER is required when DB_HOST is set")
	}

	return &cfg, nil
}
