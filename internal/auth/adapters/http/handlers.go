package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountauth/internal/auth/adapters/http/dto"
	"accountauth/internal/auth/adapters/http/middleware"
	"accountauth/internal/auth/domain/services"
	"accountauth/internal/auth/ports/api"
	"accountauth/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister     = "auth handler: register"
	LogHandlerLogin        = "auth handler: login"
	LogHandlerToken        = "auth handler: token" // #nosec G101 - not a credential
	LogHandlerMe           = "account handler: me"
	LogHandlerListAccounts = "account handler: list"
	LogHealthCheckFailed   = "health check failed"

	MsgUserRegistered = "user registered successfully"
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler содержит HTTP обработчики сервиса.
type Handler struct {
	auth     api.AuthUseCase
	accounts api.AccountUseCase
	checks   map[string]Pinger
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(auth api.AuthUseCase, accounts api.AccountUseCase, checks map[string]Pinger) *Handler {
	return &Handler{
		auth:     auth,
		accounts: accounts,
		checks:   checks,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	account, err := h.auth.Register(requestCtx, req.ToRegistration())
	if err != nil {
		return fmt.Errorf("registering account: %w", err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		ID:      account.ID,
		Message: MsgUserRegistered,
	})
}

// Login обрабатывает вход по JSON телу.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return h.issueToken(ctx, requestCtx, req)
}

// Token обрабатывает вход по форме OAuth2 password flow.
func (h *Handler) Token(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerToken)

	req := dto.LoginRequest{
		Username: ctx.FormValue("username"),
		Password: ctx.FormValue("password"),
	}
	return h.issueToken(ctx, requestCtx, req)
}

func (h *Handler) issueToken(ctx fiber.Ctx, requestCtx context.Context, req dto.LoginRequest) error {
	if err := dto.Validate(&req); err != nil {
		return err
	}

	token, err := h.auth.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewTokenResponse(token))
}

// Me возвращает профиль владельца токена.
func (h *Handler) Me(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerMe)

	account, ok := middleware.CurrentAccount(ctx)
	if !ok {
		return services.ErrUnknownSubject
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewAccountResponse(account))
}

// ListAccounts возвращает страницу публичных профилей.
func (h *Handler) ListAccounts(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListAccounts)

	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		return err
	}

	accounts, err := h.accounts.ListAccounts(requestCtx, limit, offset)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	response := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, dto.NewAccountResponse(account))
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func queryInt(ctx fiber.Ctx, key string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.ValidationError{Field: key, Message: "must be an integer"}
	}
	return value, nil
}

// Health проверяет зависимости сервиса.
func (h *Handler) Health(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	for name, check := range h.checks {
		if err := check.Ping(requestCtx); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, LogHealthCheckFailed, zap.String("dependency", name), zap.Error(err))
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":     StatusUnavailable,
				"dependency": name,
			})
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"status": StatusOK})
}
