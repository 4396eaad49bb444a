package services

import (
	"context"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
)

// TokenService выпускает и проверяет токены доступа.
type TokenService interface {
	Issue(ctx context.Context, account *entities.Account) (*services.AccessToken, error)

	Verify(ctx context.Context, token string) (*services.JWTClaims, error)
}
