package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Client state
	StateFile string

	// Behavior
	Language string
	Debug    bool
}

func Load() (*Config, error) {
	// Pick up a .env file when present; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:  getEnv("TENNIS_API_URL", "http://localhost:8000"),
		HTTPTimeout: time.Duration(getEnvInt("TENNIS_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		StateFile:   getEnv("TENNIS_STATE_FILE", ""),
		Language:    getEnv("TENNIS_LANGUAGE", "en"),
		Debug:       getEnvBool("TENNIS_DEBUG", false),
	}

	if cfg.StateFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		cfg.StateFile = filepath.Join(dir, "tennishub", "state.json")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
