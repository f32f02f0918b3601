// Package config читает конфигурацию сервиса из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"profile-page-service"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DBDSN       string `env:"DB_DSN,required,notEmpty"`

	// Пустой REDIS_ADDR — страницы кэшируются в памяти процесса.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	PageCacheTTL  time.Duration `env:"PAGE_CACHE_TTL" envDefault:"0s"`
	// Ограничивает только кэш в памяти; в Redis размер задаёт maxmemory.
	PageCacheSize int `env:"PAGE_CACHE_SIZE" envDefault:"10000"`

	CarouselLimit   int           `env:"CAROUSEL_LIMIT" envDefault:"20"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load разбирает переменные окружения в Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PageCacheTTL < 0 {
		return Config{}, fmt.Errorf("PAGE_CACHE_TTL must not be negative, got %s", cfg.PageCacheTTL)
	}
	if cfg.PageCacheSize <= 0 {
		return Config{}, fmt.Errorf("PAGE_CACHE_SIZE must be positive, got %d", cfg.PageCacheSize)
	}
	return cfg, nil
}

// SlogLevel переводит LOG_LEVEL в slog.Level, неизвестные значения дают Info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
