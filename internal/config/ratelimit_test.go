package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Errorf("limiter disabled by default")
	}
	if cfg.Capacity != 60 || cfg.RefillTokens != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("RefillInterval = %v", cfg.RefillInterval)
	}
	if cfg.Prefix != "rl" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
}

func TestLoadRateLimitConfig_ClampsBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want clamped 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want clamped 1", cfg.RefillTokens)
	}
	// TTL shorter than five refill intervals gets raised.
	if cfg.TTL != 10*time.Second {
		t.Errorf("TTL = %v, want 10s", cfg.TTL)
	}
}

func TestEnvHelpers_IgnoreUnparsable(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "lots")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "soon")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 60 {
		t.Errorf("Capacity = %d, want default 60", cfg.Capacity)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("RefillInterval = %v, want default 1s", cfg.RefillInterval)
	}
}
