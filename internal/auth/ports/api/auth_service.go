// Package api определяет основные порты сценариев сервиса.
package api

import (
	"context"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
)

// AuthUseCase определяет регистрацию и вход.
type AuthUseCase interface {
	Register(ctx context.Context, registration services.Registration) (*entities.Account, error)

	Login(ctx context.Context, username, password string) (*services.AccessToken, error)
}
