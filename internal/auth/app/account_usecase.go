package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
	"accountauth/internal/auth/ports/api"
	"accountauth/internal/auth/ports/cache"
	"accountauth/internal/auth/ports/repositories"
	svc "accountauth/internal/auth/ports/services"
	"accountauth/pkg/logger"
)

const (
	methodAuthenticate   = "Authenticate"
	methodResolveAccount = "ResolveAccount"
	methodListAccounts   = "ListAccounts"

	msgCacheHit          = "account resolved from cache"
	msgCacheUnavailable  = "account cache unavailable"
	msgCacheStoreFailed  = "failed to cache account"
	msgCacheStale        = "cached account no longer matches the store"
	msgCacheEvictFailed  = "failed to evict cached account"
	msgUnknownSubject    = "token subject does not match any account"
	msgErrResolveAccount = "error resolving account"
	msgErrListAccounts   = "error listing accounts"

	errCtxVerifyingToken   = "verifying token"
	errCtxResolvingAccount = "resolving account"
	errCtxListingAccounts  = "listing accounts"
)

// Границы постраничной выдачи.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// AccountUseCaseImpl реализует интерфейс AccountUseCase.
type AccountUseCaseImpl struct {
	accountRepo  repositories.AccountRepository
	tokenSvc     svc.TokenService
	accountCache cache.AccountCache
}

// NewAccountUseCase создает сервис учетных записей. accountCache может быть nil.
func NewAccountUseCase(
	accountRepo repositories.AccountRepository,
	tokenSvc svc.TokenService,
	accountCache cache.AccountCache,
) api.AccountUseCase {
	return &AccountUseCaseImpl{
		accountRepo:  accountRepo,
		tokenSvc:     tokenSvc,
		accountCache: accountCache,
	}
}

// Authenticate проверяет токен и возвращает учетную запись его владельца.
func (u *AccountUseCaseImpl) Authenticate(ctx context.Context, token string) (*entities.Account, error) {
	claims, err := u.tokenSvc.Verify(ctx, token)
	if err != nil {
		logger.Log(ctx).Debug(ctx, errCtxVerifyingToken, zap.String("method", methodAuthenticate), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, err)
	}
	return u.ResolveAccount(ctx, claims)
}

// ResolveAccount находит учетную запись по email из claims. Возвращаемая запись
// не содержит верификатора пароля. Хранилище остается источником истины: кэш
// дает только ID, по которому существование записи подтверждается в хранилище.
func (u *AccountUseCaseImpl) ResolveAccount(ctx context.Context, claims *services.JWTClaims) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolveAccount))

	if u.accountCache != nil {
		account, err := u.resolveCached(ctx, claims.Email)
		if err != nil {
			log.Error(ctx, msgErrResolveAccount, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxResolvingAccount, err)
		}
		if account != nil {
			log.Debug(ctx, msgCacheHit)
			return account.Public(), nil
		}
	}

	account, err := u.accountRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, entities.ErrAccountNotFound) {
			log.Debug(ctx, msgUnknownSubject)
			return nil, fmt.Errorf("%s: %w", errCtxResolvingAccount, services.ErrUnknownSubject)
		}
		log.Error(ctx, msgErrResolveAccount, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxResolvingAccount, err)
	}

	public := account.Public()
	if u.accountCache != nil {
		if err := u.accountCache.Set(ctx, public); err != nil {
			log.Warn(ctx, msgCacheStoreFailed, zap.Error(err))
		}
	}

	return public, nil
}

// resolveCached возвращает nil, nil, если в кэше нет записи или она устарела.
// Устаревшая запись удаляется из кэша.
func (u *AccountUseCaseImpl) resolveCached(ctx context.Context, email string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolveAccount))

	cached, err := u.accountCache.Get(ctx, email)
	if err != nil {
		log.Warn(ctx, msgCacheUnavailable, zap.Error(err))
		return nil, nil
	}
	if cached == nil {
		return nil, nil
	}

	account, err := u.accountRepo.FindByID(ctx, cached.ID)
	switch {
	case err == nil && account.Email == email:
		return account, nil
	case err != nil && !errors.Is(err, entities.ErrAccountNotFound):
		return nil, err
	}

	log.Debug(ctx, msgCacheStale, zap.Int64("accountID", cached.ID))
	if err := u.accountCache.Delete(ctx, email); err != nil {
		log.Warn(ctx, msgCacheEvictFailed, zap.Error(err))
	}
	return nil, nil
}

// ListAccounts возвращает страницу публичных профилей.
func (u *AccountUseCaseImpl) ListAccounts(ctx context.Context, limit, offset int) ([]*entities.Account, error) {
	limit, offset = normalizePage(limit, offset)

	accounts, err := u.accountRepo.List(ctx, limit, offset)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListAccounts, zap.String("method", methodListAccounts), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingAccounts, err)
	}

	result := make([]*entities.Account, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, account.Public())
	}
	return result, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
