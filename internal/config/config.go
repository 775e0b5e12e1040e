package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token     string `yaml:"token"`
	ChannelID int64  `yaml:"channel_id"` // channel the ads are posted to
	Workers   int    `yaml:"workers"`    // polling workers
	Link      string `yaml:"link"`       // deep-link to this bot, rendered in every ad
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

type AdminConfig struct {
	Port int `yaml:"port"` // /health and /metrics
}

// LinksConfig feeds the welcome screen. All fields are optional; absent
// links are simply not rendered.
type LinksConfig struct {
	Site       string `yaml:"site"`
	Twitter    string `yaml:"twitter"`
	Telegram   string `yaml:"telegram"`
	PromoImage string `yaml:"promo_image"`
}

type PaymentConfig struct {
	// Recipient is the address every plan payment must land on.
	Recipient string `yaml:"recipient"`
}

type ChainConfig struct {
	BaseURL string        `yaml:"base_url"` // transaction-lookup provider
	Timeout time.Duration `yaml:"timeout"`
}

type MetadataConfig struct {
	BaseURL string        `yaml:"base_url"` // token metadata provider
	Timeout time.Duration `yaml:"timeout"`
}

// RedisConfig is optional: when URL is empty the replay guard and rate
// limiter stay in process memory.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DatabaseConfig is optional: when URL is empty published posts and consumed
// transactions are not persisted and a restart loses them.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RateLimitConfig struct {
	SubmitMaxCalls int           `yaml:"submit_max_calls"`
	SubmitWindow   time.Duration `yaml:"submit_window"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Links     LinksConfig     `yaml:"links"`
	Payment   PaymentConfig   `yaml:"payment"`
	Chain     ChainConfig     `yaml:"chain"`
	Metadata  MetadataConfig  `yaml:"metadata"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 8080
	}
	if cfg.Chain.BaseURL == "" {
		cfg.Chain.BaseURL = "https://api.solana.fm"
	}
	if cfg.Chain.Timeout <= 0 {
		cfg.Chain.Timeout = 30 * time.Second
	}
	if cfg.Metadata.BaseURL == "" {
		cfg.Metadata.BaseURL = "https://api.dexscreener.com"
	}
	if cfg.Metadata.Timeout <= 0 {
		cfg.Metadata.Timeout = 15 * time.Second
	}
	if cfg.RateLimit.SubmitMaxCalls <= 0 {
		cfg.RateLimit.SubmitMaxCalls = 5
	}
	if cfg.RateLimit.SubmitWindow <= 0 {
		cfg.RateLimit.SubmitWindow = time.Minute
	}

	// Verification and publishing are impossible without these two, so fail
	// at startup rather than at first use.
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Bot.ChannelID == 0 {
		return nil, errors.New("bot.channel_id is required")
	}
	if cfg.Payment.Recipient == "" {
		return nil, errors.New("payment.recipient is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
