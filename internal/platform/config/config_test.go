package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "skills")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg := Load()

	assert.Equal(t, "9090", cfg.APIPort)
	assert.Equal(t, 72*time.Hour, cfg.JWTExp)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Contains(t, cfg.DBConnStr, "host=db")
	assert.Contains(t, cfg.DBConnStr, "dbname=skills")
}

func TestLoadPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/x?sslmode=disable")

	cfg := Load()

	assert.Equal(t, "postgres://u:p@localhost:5432/x?sslmode=disable", cfg.DBConnStr)
}

func TestEmbeddedWorkerFlag(t *testing.T) {
	t.Setenv("EMBEDDED_WORKER", "false")
	assert.False(t, Load().EmbeddedWorker)

	t.Setenv("EMBEDDED_WORKER", "maybe")
	assert.True(t, Load().EmbeddedWorker)
}
