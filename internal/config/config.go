package config

import (
	"os"
	"strings"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	GeminiKey   string
	GeminiModel string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "starters.db"),
		Env:         getEnv("APP_ENV", "development"),
		GeminiKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel: getEnv("GEMINI_MODEL", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Migrations reports whether SQL migrations should run instead of the
// AutoMigrate fallback.
func Migrations() bool {
	switch strings.ToLower(os.Getenv("MIGRATIONS")) {
	case "1", "true", "yes":
		return true
	}
	return false
}
