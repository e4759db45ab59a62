package config

import "testing"

func TestLoadAPIFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FINSIM_API_ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FINSIM_EVENT_CHANCE", "")
	t.Setenv("FINSIM_SEED", "")

	cfg := LoadAPIFromEnv()
	if cfg.Addr != ":8080" {
		t.Fatalf("addr got %q want :8080", cfg.Addr)
	}
	if cfg.EventChance != 0.30 {
		t.Fatalf("event chance got %v want 0.30", cfg.EventChance)
	}
	if cfg.Seed != 0 || cfg.DatabaseURL != "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadAPIFromEnvPortPrefix(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg := LoadAPIFromEnv()
	if cfg.Addr != ":9090" {
		t.Fatalf("addr got %q want :9090", cfg.Addr)
	}
}

func TestLoadAPIFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FINSIM_API_ADDR", ":7000")
	t.Setenv("FINSIM_EVENT_CHANCE", "0.5")
	t.Setenv("FINSIM_SEED", "42")

	cfg := LoadAPIFromEnv()
	if cfg.Addr != ":7000" || cfg.EventChance != 0.5 || cfg.Seed != 42 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestEnvFallbacksOnGarbage(t *testing.T) {
	t.Setenv("FINSIM_EVENT_CHANCE", "not-a-number")
	t.Setenv("FINSIM_RUN_YEARS", "many")
	t.Setenv("FINSIM_RUN_AUTO_RESOLVE", "sometimes")

	if got := envFloatDefault("FINSIM_EVENT_CHANCE", 0.30); got != 0.30 {
		t.Fatalf("float fallback got %v", got)
	}
	if got := envIntDefault("FINSIM_RUN_YEARS", 30); got != 30 {
		t.Fatalf("int fallback got %v", got)
	}
	if got := envBoolDefault("FINSIM_RUN_AUTO_RESOLVE", true); !got {
		t.Fatalf("bool fallback got %v", got)
	}
}
