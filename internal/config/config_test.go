package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("MYSQL_DATABASE", "orders_test")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "orders_test", cfg.MySQLDatabase)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)

	// Defaults.
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
	assert.Equal(t, 15*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "orders_queue", cfg.QueueName)
	assert.Equal(t, "100/minute", cfg.RateLimit)
	assert.Equal(t, "HS256", cfg.Algorithm)
	assert.False(t, cfg.WorkerRequeue)
}

func TestLoad_RequiresSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
}
