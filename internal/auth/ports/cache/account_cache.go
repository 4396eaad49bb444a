// Package cache определяет порт кэша учетных записей.
package cache

import (
	"context"

	"accountauth/internal/auth/domain/entities"
)

// AccountCache хранит публичные данные учетных записей по email.
// Get возвращает nil, nil при промахе.
type AccountCache interface {
	Get(ctx context.Context, email string) (*entities.Account, error)

	Set(ctx context.Context, account *entities.Account) error

	Delete(ctx context.Context, email string) error
}
