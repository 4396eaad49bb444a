// Package config содержит конфигурацию сервиса учетных записей.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"accountauth/pkg/config"
	"accountauth/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName   = "auth"
	EnvConfigPath = "AUTH_CONFIG_PATH"

	LogConfigLoaded     = "authentication service configuration loaded"
	ErrFailedLoadConfig = "failed to load configuration"
	ErrInvalidConfig    = "invalid configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла AUTH_CONFIG_PATH (если задан) и переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := config.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Duration("access_token_ttl", cfg.JWT.GetAccessTokenTTL()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.GetTimeout()))

	return cfg, nil
}

// Validate проверяет значения, которые нельзя исправить значениями по умолчанию.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.SecretKey) == "" {
		return ErrEmptySecretKey
	}
	if _, err := c.JWT.ParseAccessTokenTTL(); err != nil {
		return err
	}
	return nil
}
