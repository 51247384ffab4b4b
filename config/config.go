package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GroqAPIKey  string
	ModelName   string
	APIBaseURL  string
	DBPath      string
	ArchivePath string
	MaxHistory  int
	CacheTTL    time.Duration
}

func GetConfig() Config {
	// Best effort: a missing .env file is fine, real env wins either way.
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "9090"),
		GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
		ModelName:   getEnv("GROQ_MODEL", "llama3-8b-8192"),
		APIBaseURL:  getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		DBPath:      getEnv("DB_PATH", "./data/parking.db"),
		ArchivePath: getEnv("ARCHIVE_PATH", "./data/archive"),
		MaxHistory:  getEnvInt("MAX_HISTORY", 5),
		CacheTTL:    getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
