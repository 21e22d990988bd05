package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port    string
	BaseURL string

	// Database
	DBDriver string // "sqlite" or "postgres"
	DBPath   string // SQLite file path
	DBURL    string // PostgreSQL connection string

	// Frontend
	StaticDir string

	// DialogFlow webhook
	ChatResultLimit int // max vehicles fetched per chatbot search
}

func Load() *Config {
	// Optional .env for local development; real deployments set env vars.
	godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBPath:          getEnv("DB_PATH", "./data/catalog.db"),
		DBURL:           getEnv("DATABASE_URL", ""),
		StaticDir:       getEnv("STATIC_DIR", "./frontend/dist"),
		ChatResultLimit: getEnvInt("CHAT_RESULT_LIMIT", 10),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
