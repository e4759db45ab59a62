package config

import (
	"os"
	"strconv"
	"strings"
)

type APIConfig struct {
	Addr        string
	DatabaseURL string
	SaveDir     string
	EventChance float64
	Seed        int64
}

type CLIConfig struct {
	APIBaseURL string
}

type RunConfig struct {
	Years       int
	Seed        int64
	PlayerName  string
	SaveDir     string
	AutoResolve bool
}

// LoadAPIFromEnv reads server settings. DATABASE_URL is optional: with
// no database the server falls back to the file snapshot store.
func LoadAPIFromEnv() APIConfig {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("FINSIM_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:        addr,
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SaveDir:     strings.TrimSpace(os.Getenv("FINSIM_SAVE_DIR")),
		EventChance: envFloatDefault("FINSIM_EVENT_CHANCE", 0.30),
		Seed:        envInt64Default("FINSIM_SEED", 0),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("FINSIM_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func LoadRunFromEnv() RunConfig {
	return RunConfig{
		Years:       envIntDefault("FINSIM_RUN_YEARS", 30),
		Seed:        envInt64Default("FINSIM_SEED", 0),
		PlayerName:  envDefault("FINSIM_RUN_PLAYER", "headless"),
		SaveDir:     strings.TrimSpace(os.Getenv("FINSIM_SAVE_DIR")),
		AutoResolve: envBoolDefault("FINSIM_RUN_AUTO_RESOLVE", true),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envFloatDefault(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
