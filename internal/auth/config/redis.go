package config

import (
	"time"

	"accountauth/pkg/db/redis"
	"accountauth/pkg/resilience"
)

// RedisConfig содержит настройки кэша учетных записей.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled" env:"AUTH_REDIS_ENABLED" env-default:"false"`
	Host     string        `yaml:"host" env:"AUTH_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"AUTH_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"AUTH_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"AUTH_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"AUTH_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"AUTH_REDIS_TIMEOUT" env-default:"3s"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"AUTH_REDIS_CACHE_TTL" env-default:"1m"`

	BreakerErrorThreshold int           `yaml:"breaker_error_threshold" env:"AUTH_REDIS_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	BreakerTimeout        time.Duration `yaml:"breaker_timeout" env:"AUTH_REDIS_BREAKER_TIMEOUT" env-default:"10s"`
}

// ClientConfig возвращает настройки клиента Redis.
func (r *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}

// BreakerConfig возвращает настройки Circuit Breaker для кэша.
func (r *RedisConfig) BreakerConfig() resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig()
	if r.BreakerErrorThreshold > 0 {
		cfg.ErrorThreshold = r.BreakerErrorThreshold
	}
	if r.BreakerTimeout > 0 {
		cfg.Timeout = r.BreakerTimeout
	}
	return cfg
}
