package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
	"accountauth/internal/auth/ports/api"
	"accountauth/pkg/logger"
)

const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"

	bearerPrefix  = "bearer "
	localsAccount = "account"
)

// Ошибки заголовка авторизации.
var (
	ErrNoAuthHeader       = &services.AuthError{Message: "not authenticated"}
	ErrInvalidTokenFormat = &services.AuthError{Message: "invalid token"}
)

// NewAuthMiddleware проверяет bearer-токен и сохраняет учетную запись владельца.
func NewAuthMiddleware(accounts api.AccountUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ErrNoAuthHeader
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ErrInvalidTokenFormat
		}

		account, err := accounts.Authenticate(requestCtx, strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			return fmt.Errorf("authenticating request: %w", err)
		}

		ctx.Locals(localsAccount, account)
		return ctx.Next()
	}
}

// CurrentAccount возвращает учетную запись, установленную NewAuthMiddleware.
func CurrentAccount(ctx fiber.Ctx) (*entities.Account, bool) {
	account, ok := ctx.Locals(localsAccount).(*entities.Account)
	return account, ok && account != nil
}
