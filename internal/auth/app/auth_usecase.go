// Package app содержит сценарии регистрации, входа и разрешения учетных записей.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
	"accountauth/internal/auth/ports/api"
	"accountauth/internal/auth/ports/repositories"
	svc "accountauth/internal/auth/ports/services"
	"accountauth/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	msgStartRegistration  = "starting account registration"
	msgPasswordMismatch   = "password confirmation does not match"
	msgInvalidIdentity    = "invalid identity fields"
	msgRegistrationTaken  = "username or email already taken"
	msgAccountRegistered  = "account registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginUnknownUser   = "login attempt with unknown username"
	msgLoginWrongPassword = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"

	msgErrHashPassword    = "failed to hash password"
	msgErrDummyHash       = "failed to build verifier for unknown usernames"
	msgErrCreateAccount   = "failed to create account"
	msgErrFindingAccount  = "error finding account by username"
	msgErrGenerateToken   = "failed to generate access token"
	errCtxValidating      = "validating registration"
	errCtxHashingPassword = "hashing password"
	errCtxCreatingAccount = "creating account"
	errCtxFindingAccount  = "finding account"
	errCtxIssuingToken    = "issuing token"
	errCtxInvalidLogin    = "invalid credentials"
)

// При неизвестном имени пользователя пароль сравнивается с верификатором
// dummyPassword, чтобы время ответа не выдавало существование учетной записи.
// fallbackDummyHash используется, только если хэшер не смог его построить.
const (
	dummyPassword     = "no-such-account"
	fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	accountRepo repositories.AccountRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	dummyHash   string
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
// Верификатор для неизвестных имен строится тем же хэшером, что и настоящие,
// поэтому его стоимость совпадает с настроенной.
func NewAuthUseCase(
	accountRepo repositories.AccountRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	ctx := context.Background()

	dummyHash, err := passwordSvc.Hash(ctx, dummyPassword)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrDummyHash, zap.Error(err))
		dummyHash = fallbackDummyHash
	}

	return &AuthUseCaseImpl{
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		dummyHash:   dummyHash,
	}
}

// Register создает учетную запись. Подтверждение пароля проверяется до
// обращения к хэшеру и хранилищу.
func (a *AuthUseCaseImpl) Register(ctx context.Context, reg services.Registration) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", reg.Username))
	log.Debug(ctx, msgStartRegistration)

	if err := services.CheckPasswordConfirmation(reg.Password, reg.RepeatPassword); err != nil {
		log.Debug(ctx, msgPasswordMismatch)
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	if err := validateIdentity(reg); err != nil {
		log.Debug(ctx, msgInvalidIdentity, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, reg.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) || errors.Is(err, services.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%s: %w", errCtxValidating,
				&services.ValidationError{Field: "password", Message: err.Error()})
		}
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.accountRepo.Create(ctx, &entities.Account{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Username:     reg.Username,
		Email:        reg.Email,
		Age:          reg.Age,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, entities.ErrAccountConflict) {
			log.Debug(ctx, msgRegistrationTaken)
			return nil, fmt.Errorf("%s: %w", errCtxCreatingAccount, services.ErrRegistrationConflict)
		}
		log.Error(ctx, msgErrCreateAccount, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAccount, err)
	}

	log.Info(ctx, msgAccountRegistered, zap.Int64("accountID", created.ID))
	return created, nil
}

// Login проверяет учетные данные и выдает токен доступа. Неизвестное имя
// пользователя и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*services.AccessToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	account, err := a.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrAccountNotFound) {
			a.passwordSvc.Verify(ctx, password, a.dummyHash)
			log.Debug(ctx, msgLoginUnknownUser)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidLogin, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingAccount, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingAccount, err)
	}

	if !a.passwordSvc.Verify(ctx, password, account.PasswordHash) {
		log.Debug(ctx, msgLoginWrongPassword)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidLogin, services.ErrInvalidCredentials)
	}

	token, err := a.tokenSvc.Issue(ctx, account)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("accountID", account.ID))
	return token, nil
}

func validateIdentity(reg services.Registration) error {
	switch {
	case strings.TrimSpace(reg.Username) == "":
		return &services.ValidationError{Field: "username", Message: "username is required"}
	case strings.TrimSpace(reg.Email) == "":
		return &services.ValidationError{Field: "email", Message: "email is required"}
	case reg.Age < 0:
		return &services.ValidationError{Field: "age", Message: "age must not be negative"}
	}
	return nil
}
