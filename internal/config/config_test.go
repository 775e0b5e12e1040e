//go:build !integration

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"telegram-trending-ads/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
bot:
  token: "123:abc"
  channel_id: -100123
payment:
  recipient: "RecipientWallet111111111111111111"
`

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults over a minimal file", func(t *testing.T) {
		cfg, err := config.LoadConfig(writeConfig(t, minimalConfig), false)
		if err != nil {
			t.Fatalf("expected config, got: %v", err)
		}
		if cfg.Bot.Workers != 8 {
			t.Errorf("expected default 8 workers, got %d", cfg.Bot.Workers)
		}
		if cfg.Chain.BaseURL != "https://api.solana.fm" {
			t.Errorf("unexpected chain default %q", cfg.Chain.BaseURL)
		}
		if cfg.Metadata.BaseURL != "https://api.dexscreener.com" {
			t.Errorf("unexpected metadata default %q", cfg.Metadata.BaseURL)
		}
		if cfg.RateLimit.SubmitMaxCalls != 5 || cfg.RateLimit.SubmitWindow != time.Minute {
			t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
		}
		if cfg.Admin.Port != 8080 {
			t.Errorf("expected default admin port 8080, got %d", cfg.Admin.Port)
		}
	})

	t.Run("should honor explicit values", func(t *testing.T) {
		cfg, err := config.LoadConfig(writeConfig(t, minimalConfig+`
chain:
  base_url: "http://localhost:9999"
  timeout: 3s
rate_limit:
  submit_max_calls: 2
  submit_window: 30s
`), true)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.Chain.BaseURL != "http://localhost:9999" || cfg.Chain.Timeout != 3*time.Second {
			t.Errorf("unexpected chain config: %+v", cfg.Chain)
		}
		if cfg.RateLimit.SubmitMaxCalls != 2 || cfg.RateLimit.SubmitWindow != 30*time.Second {
			t.Errorf("unexpected rate limit: %+v", cfg.RateLimit)
		}
		if !cfg.Runtime.Dev {
			t.Error("expected dev mode flag carried into runtime config")
		}
	})

	t.Run("should fail fast on missing required fields", func(t *testing.T) {
		cases := map[string]string{
			"missing token": `
bot:
  channel_id: -100123
payment:
  recipient: "x"
`,
			"missing channel": `
bot:
  token: "123:abc"
payment:
  recipient: "x"
`,
			"missing recipient": `
bot:
  token: "123:abc"
  channel_id: -100123
`,
		}
		for name, body := range cases {
			if _, err := config.LoadConfig(writeConfig(t, body), false); err == nil {
				t.Errorf("%s: expected an error", name)
			}
		}
	})

	t.Run("should fail on an absent file", func(t *testing.T) {
		if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false); err == nil {
			t.Error("expected an error")
		}
	})
}
