package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-page-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/profiles")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres://localhost/profiles", cfg.DBDSN)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Duration(0), cfg.PageCacheTTL)
	assert.Equal(t, 10000, cfg.PageCacheSize)
	assert.Equal(t, 20, cfg.CarouselLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://db/profiles")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("PAGE_CACHE_TTL", "10m")
	t.Setenv("PAGE_CACHE_SIZE", "500")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.PageCacheTTL)
	assert.Equal(t, 500, cfg.PageCacheSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Empty DSN", env: map[string]string{"DB_DSN": ""}},
		{name: "Negative TTL", env: map[string]string{"DB_DSN": "postgres://db", "PAGE_CACHE_TTL": "-1s"}},
		{name: "Zero cache size", env: map[string]string{"DB_DSN": "postgres://db", "PAGE_CACHE_SIZE": "0"}},
		{name: "Bad duration", env: map[string]string{"DB_DSN": "postgres://db", "SHUTDOWN_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
