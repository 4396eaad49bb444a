// Package cache содержит реализацию кэша учетных записей на Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/ports/cache"
	"accountauth/pkg/db/redis"
	"accountauth/pkg/logger"
	"accountauth/pkg/resilience"
)

// Константы для логирования.
const (
	LogMethodGet    = "get"
	LogMethodSet    = "set"
	LogMethodDelete = "delete"

	ErrorFailedToGet    = "failed to get account from redis"
	ErrorFailedToSet    = "failed to set account in redis"
	ErrorFailedToDelete = "failed to delete account from redis"
	ErrorFailedToDecode = "failed to decode cached account"
	ErrorFailedToEncode = "failed to encode account"

	keyPrefix   = "account:email:"
	breakerName = "redis-account-cache"
)

// DefaultTTL - время жизни записи кэша по умолчанию.
const DefaultTTL = time.Minute

type cachedAccount struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisAccountCache реализует интерфейс AccountCache с использованием Redis.
// Верификатор пароля в кэш не попадает.
type RedisAccountCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
}

// NewRedisAccountCache создает новый экземпляр RedisAccountCache.
func NewRedisAccountCache(client *redis.Client, ttl time.Duration, cbConfig resilience.CircuitBreakerConfig) cache.AccountCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisAccountCache{
		client:  client,
		ttl:     ttl,
		breaker: resilience.NewCircuitBreaker(breakerName, cbConfig),
	}
}

func key(email string) string {
	return keyPrefix + email
}

// Get получает учетную запись по email. При промахе возвращает nil, nil.
func (c *RedisAccountCache) Get(ctx context.Context, email string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet))

	var raw string
	err := c.breaker.Execute(ctx, func() error {
		value, err := c.client.Get(ctx, key(email))
		if redis.IsNil(err) {
			return nil
		}
		raw = value
		return err
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	if raw == "" {
		return nil, nil
	}

	var cached cachedAccount
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	return &entities.Account{
		ID:        cached.ID,
		FirstName: cached.FirstName,
		LastName:  cached.LastName,
		Username:  cached.Username,
		Email:     cached.Email,
		Age:       cached.Age,
		CreatedAt: cached.CreatedAt,
	}, nil
}

// Set сохраняет публичные данные учетной записи.
func (c *RedisAccountCache) Set(ctx context.Context, account *entities.Account) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet))

	payload, err := json.Marshal(cachedAccount{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Username:  account.Username,
		Email:     account.Email,
		Age:       account.Age,
		CreatedAt: account.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	err = c.breaker.Execute(ctx, func() error {
		return c.client.Set(ctx, key(account.Email), payload, c.ttl)
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Delete удаляет запись учетной записи из кэша.
func (c *RedisAccountCache) Delete(ctx context.Context, email string) error {
	err := c.breaker.Execute(ctx, func() error {
		return c.client.Delete(ctx, key(email))
	})
	if err != nil {
		logger.Log(ctx).Warn(ctx, ErrorFailedToDelete, zap.String("method", LogMethodDelete), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}
