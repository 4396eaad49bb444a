package config

import (
	"errors"
	"fmt"
	"time"

	"accountauth/internal/auth/domain/services"
)

// ErrEmptySecretKey возвращается, если ключ подписи не задан.
var ErrEmptySecretKey = errors.New("jwt secret key must not be empty")

// JWTConfig содержит настройки токенов и хэширования паролей.
// Ключ подписи не имеет значения по умолчанию и задается только извне.
type JWTConfig struct {
	SecretKey      string `yaml:"secret_key" env:"AUTH_JWT_SECRET_KEY" env-required:"true"`
	AccessTokenTTL string `yaml:"access_token_ttl" env:"AUTH_JWT_ACCESS_TOKEN_TTL" env-default:"30m"`
	BCryptCost     int    `yaml:"bcrypt_cost" env:"AUTH_JWT_BCRYPT_COST" env-default:"10"`
}

// ParseAccessTokenTTL разбирает время жизни токена доступа.
func (c *JWTConfig) ParseAccessTokenTTL() (time.Duration, error) {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return 0, fmt.Errorf("access token ttl %q: %w", c.AccessTokenTTL, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("access token ttl %q must be positive", c.AccessTokenTTL)
	}
	return duration, nil
}

// GetAccessTokenTTL возвращает продолжительность времени жизни access токена.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := c.ParseAccessTokenTTL()
	if err != nil {
		return services.DefaultAccessTokenTTL
	}
	return duration
}
