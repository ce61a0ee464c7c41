package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment. The
// moderation API key is carried here and handed to the classification client
// explicitly; nothing reads it ambiently.
type Config struct {
	Port             string
	StorageDriver    string
	BadgerPath       string
	DatabaseURL      string
	ModerationAPIKey string
	ModerationURL    string
}

// Load reads configuration from a .env file if present, then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:             getEnv("PORT", "8080"),
		StorageDriver:    getEnv("STORAGE_DRIVER", "badger"),
		BadgerPath:       getEnv("BADGER_PATH", "data/badger"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		ModerationAPIKey: getEnv("GEMINI_API_KEY", ""),
		ModerationURL:    getEnv("MODERATION_API_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
