package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Token:    "123:abc",
			AdminIDs: []int64{123456789},
		},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q", cfg.Telegram.RunMode)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != "5432" {
		t.Fatalf("db defaults: %+v", cfg.Database)
	}
	if cfg.Database.SSLMode != "disable" || cfg.Database.MaxConnections != 10 {
		t.Fatalf("db defaults: %+v", cfg.Database)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestNormalizeRejectsBadAdminID(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.AdminIDs = []int64{123, -5}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for non-positive admin id")
	}
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "webhook.url") {
		t.Fatalf("expected webhook.url error, got %v", err)
	}

	cfg.Webhook.URL = "https://bot.example.com/hook"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
}

func TestNormalizeRejectsUnknownRunMode(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown run mode")
	}
}

func TestNormalizeRateLimitExcludes(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "MESSAGE"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != "callback" || cfg.RateLimit.ExcludeUpdates[1] != "message" {
		t.Fatalf("excludes = %v", cfg.RateLimit.ExcludeUpdates)
	}

	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unsupported exclude")
	}
}
