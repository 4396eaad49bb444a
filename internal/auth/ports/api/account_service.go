package api

import (
	"context"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
)

// AccountUseCase определяет доступ к учетным записям по токену.
type AccountUseCase interface {
	Authenticate(ctx context.Context, token string) (*entities.Account, error)

	ResolveAccount(ctx context.Context, claims *services.JWTClaims) (*entities.Account, error)

	ListAccounts(ctx context.Context, limit, offset int) ([]*entities.Account, error)
}
