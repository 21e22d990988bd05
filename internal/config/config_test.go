package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "./data/catalog.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.ChatResultLimit)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/catalog")
	t.Setenv("CHAT_RESULT_LIMIT", "5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/catalog", cfg.DBURL)
	assert.Equal(t, 5, cfg.ChatResultLimit)
}

func TestGetEnvIntInvalid(t *testing.T) {
	t.Setenv("CHAT_RESULT_LIMIT", "lots")

	cfg := Load()
	assert.Equal(t, 10, cfg.ChatResultLimit)
}
